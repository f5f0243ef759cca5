package credentials

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_SetGet(t *testing.T) {
	s, _ := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyUserName, "Asha Rao"))

	value, err := s.Get(ctx, KeyUserName)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", value)
}

func TestRedisStore_GetMissing(t *testing.T) {
	s, _ := setupRedisStore(t)

	_, err := s.Get(context.Background(), KeyUserProfilePic)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_KeysArePrefixed(t *testing.T) {
	s, mr := setupRedisStore(t)

	require.NoError(t, s.Set(context.Background(), KeyUserEmail, "asha@example.com"))

	stored, err := mr.Get(keyPrefix + KeyUserEmail)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", stored)
}

func TestRedisStore_ClearRemovesOnlyCredentials(t *testing.T) {
	s, mr := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyUserEmail, "asha@example.com"))
	require.NoError(t, s.Set(ctx, KeyUserPassword, "secret"))
	require.NoError(t, mr.Set("catalog:services", "[]"))

	require.NoError(t, s.Clear(ctx))

	_, err := s.Get(ctx, KeyUserEmail)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, mr.Exists("catalog:services"))
}

func TestRedisStore_ClearEmptyIsNoError(t *testing.T) {
	s, _ := setupRedisStore(t)

	assert.NoError(t, s.Clear(context.Background()))
}

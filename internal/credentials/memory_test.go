package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyUserEmail, "asha@example.com"))

	value, err := s.Get(ctx, KeyUserEmail)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", value)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), KeyUserName)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SetOverwrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyUserMobile, "111"))
	require.NoError(t, s.Set(ctx, KeyUserMobile, "222"))

	value, err := s.Get(ctx, KeyUserMobile)
	require.NoError(t, err)
	assert.Equal(t, "222", value)
}

func TestMemoryStore_Clear(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyUserEmail, "asha@example.com"))
	require.NoError(t, s.Set(ctx, KeyUserPassword, "secret"))

	require.NoError(t, s.Clear(ctx))

	_, err := s.Get(ctx, KeyUserEmail)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, KeyUserPassword)
	assert.ErrorIs(t, err, ErrNotFound)
}

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// ServiceCache keeps catalog reads off the database. The catalog is
// static after seeding, so entries only expire, never invalidate.
type ServiceCache interface {
	GetAll(ctx context.Context) ([]*Service, error)
	SetAll(ctx context.Context, services []*Service) error
	Get(ctx context.Context, id string) (*Service, error)
	Set(ctx context.Context, service *Service) error
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) GetAll(ctx context.Context) ([]*Service, error) {
	data, err := r.client.Get(ctx, allServicesKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var services []*Service
	if err2 := json.Unmarshal(data, &services); err2 != nil {
		return nil, fmt.Errorf("unmarshal services failed: %w", err2)
	}

	return services, nil
}

func (r *RedisCache) SetAll(ctx context.Context, services []*Service) error {
	data, err := json.Marshal(services)
	if err != nil {
		return fmt.Errorf("marshal services failed: %w", err)
	}

	if err := r.client.Set(ctx, allServicesKey(), data, r.ttl()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Get(ctx context.Context, id string) (*Service, error) {
	data, err := r.client.Get(ctx, serviceKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var service Service
	if err2 := json.Unmarshal(data, &service); err2 != nil {
		return nil, fmt.Errorf("unmarshal service failed: %w", err2)
	}

	return &service, nil
}

func (r *RedisCache) Set(ctx context.Context, service *Service) error {
	data, err := json.Marshal(service)
	if err != nil {
		return fmt.Errorf("marshal service failed: %w", err)
	}

	if err := r.client.Set(ctx, serviceKey(service.ID), data, r.ttl()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// ttl adds jitter so cached entries do not all expire at once.
func (r *RedisCache) ttl() time.Duration {
	return r.baseTTL + time.Duration(rand.Intn(5))*time.Minute
}

func allServicesKey() string { return "catalog:services" }

func serviceKey(id string) string { return fmt.Sprintf("catalog:service:%s", id) }

package catalog

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/singleflight"
)

// CatalogService serves catalog reads through the cache, falling back to
// the repository. Cache failures are logged and never surface to the
// caller.
type CatalogService struct {
	repo  RepoInterface
	cache ServiceCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewCatalogService(repo RepoInterface, cache ServiceCache) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
	}
}

func (s *CatalogService) GetAllServices(ctx context.Context) ([]*Service, error) {
	// Use singleflight so concurrent cache misses hit the database once
	v, err, _ := s.sfg.Do("services", func() (interface{}, error) {
		services, err := s.cache.GetAll(ctx)
		if err == nil {
			return services, nil
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v", err)
		}

		services, errGet := s.repo.GetAllServices(ctx)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.SetAll(context.Background(), services); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return services, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]*Service), nil
}

func (s *CatalogService) GetService(ctx context.Context, id string) (*Service, error) {
	v, err, _ := s.sfg.Do("service:"+id, func() (interface{}, error) {
		service, err := s.cache.Get(ctx, id)
		if err == nil {
			return service, nil
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v", err)
		}

		service, errGet := s.repo.GetService(ctx, id)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), service); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return service, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*Service), nil
}

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgredis "github.com/ozanakin/carsi-storefront/pkg/redis"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
)

const productsCacheKey = "products"

type productLister interface {
	ListAll(ctx context.Context) ([]models.Product, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// CachedSource is a read-through product source: catalog reads hit Redis
// first and fall back to the repository. Admin writes invalidate the entry.
type CachedSource struct {
	repo  productLister
	cache cacheStore
	ttl   time.Duration
}

// NewCachedSource wraps the repository with the cache layer. A nil cache
// degrades to repository-only reads.
func NewCachedSource(repo productLister, cache cacheStore, ttl time.Duration) *CachedSource {
	return &CachedSource{repo: repo, cache: cache, ttl: ttl}
}

// ListAll returns the full catalog, preferring the cached copy.
func (s *CachedSource) ListAll(ctx context.Context) ([]models.Product, error) {
	if s.cache == nil {
		return s.repo.ListAll(ctx)
	}

	key := pkgredis.CatalogKey(productsCacheKey)
	if raw, err := s.cache.Get(ctx, key); err == nil {
		var cached []models.Product
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
		// Corrupt entry: drop it and fall through to the repository.
		_ = s.cache.Del(ctx, key)
	} else if !errors.Is(err, pkgredis.Nil) {
		// Cache outage must not take the catalog down.
		return s.repo.ListAll(ctx)
	}

	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(rows); err == nil {
		_ = s.cache.Set(ctx, key, string(encoded), s.ttl)
	}
	return rows, nil
}

// Invalidate drops the cached catalog after an admin write.
func (s *CachedSource) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, pkgredis.CatalogKey(productsCacheKey))
}

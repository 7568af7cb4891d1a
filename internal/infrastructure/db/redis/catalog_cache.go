package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
)

const (
	catalogKey = "sweets:catalog"
	catalogTTL = 30 * time.Second
)

// CatalogCache caches the unfiltered sweets listing in Redis as a JSON blob.
// Every inventory write invalidates it, so a stale entry lives at most
// catalogTTL after a missed invalidation.
type CatalogCache struct {
	client *redis.Client
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

// Get returns the cached listing, or (nil, nil) on a cache miss. A cached
// empty catalog comes back as an empty non-nil slice, distinct from a miss.
func (c *CatalogCache) Get(ctx context.Context) ([]domain.Sweet, error) {
	b, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog cache get: %w", err)
	}
	return decodeCatalog(b)
}

// Set stores the listing with the catalog TTL.
func (c *CatalogCache) Set(ctx context.Context, sweets []domain.Sweet) error {
	b, err := encodeCatalog(sweets)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogKey, b, catalogTTL).Err()
}

// encodeCatalog marshals the listing. A nil slice is stored as an empty JSON
// array, not null, so an empty catalog still round-trips as a cache hit.
func encodeCatalog(sweets []domain.Sweet) ([]byte, error) {
	if sweets == nil {
		sweets = []domain.Sweet{}
	}
	b, err := json.Marshal(sweets)
	if err != nil {
		return nil, fmt.Errorf("catalog cache encode: %w", err)
	}
	return b, nil
}

func decodeCatalog(b []byte) ([]domain.Sweet, error) {
	sweets := []domain.Sweet{}
	if err := json.Unmarshal(b, &sweets); err != nil {
		return nil, fmt.Errorf("catalog cache decode: %w", err)
	}
	return sweets, nil
}

// Invalidate drops the cached listing.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}

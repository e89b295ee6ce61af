package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// listingKey holds the rendered JSON of the public project listing.
const listingKey = "portfolio:projects:list"

// ListingCache is an optional Redis cache-aside for the public listing
// response. The project store stays authoritative; every successful mutation
// invalidates the cached body.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

// NewListingCache creates a cache over the given client with the given TTL.
func NewListingCache(client *redis.Client, ttl time.Duration, log *logrus.Logger) *ListingCache {
	return &ListingCache{client: client, ttl: ttl, log: log}
}

// Get returns the cached listing body, or ok=false on a miss or any error.
func (c *ListingCache) Get(ctx context.Context) ([]byte, bool) {
	data, err := c.client.Get(ctx, listingKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warnf("listing cache get: %v", err)
		return nil, false
	}
	return data, true
}

// Set stores the listing body. Errors are logged only; the cache is never
// allowed to fail a read path.
func (c *ListingCache) Set(ctx context.Context, body []byte) {
	if err := c.client.Set(ctx, listingKey, body, c.ttl).Err(); err != nil {
		c.log.Warnf("listing cache set: %v", err)
	}
}

// Invalidate drops the cached listing.
func (c *ListingCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, listingKey).Err(); err != nil {
		c.log.Warnf("listing cache invalidate: %v", err)
	}
}

// Ping reports whether the backing Redis is reachable.
func (c *ListingCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// RateCache implements ports.RateCache: a TTL cache in front of the rate
// oracle. Populated on first miss and invalidated by TTL only; there is
// no manual invalidation path.
type RateCache struct {
	client *goredis.Client
	prefix string
}

// NewRateCache creates a new Redis-backed rate cache.
func NewRateCache(client *goredis.Client) *RateCache {
	return &RateCache{
		client: client,
		prefix: "rate:",
	}
}

// Get retrieves a cached rate. Returns found=false on a miss.
func (c *RateCache) Get(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if err == goredis.Nil {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("redis rate get: %w", err)
	}

	rate, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("parse cached rate %q: %w", val, err)
	}
	return rate, true, nil
}

// Set stores a rate with TTL.
func (c *RateCache) Set(ctx context.Context, key string, value decimal.Decimal, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value.String(), ttl).Err(); err != nil {
		return fmt.Errorf("redis rate set: %w", err)
	}
	return nil
}

package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DedupeStore implements ports.DedupeCache: a fast-path seen-txid filter
// for duplicated provider webhooks. The ledger lookup stays authoritative;
// this only short-circuits the common duplicate-delivery case.
type DedupeStore struct {
	client *goredis.Client
	prefix string
}

// NewDedupeStore creates a new Redis-backed webhook dedupe store.
func NewDedupeStore(client *goredis.Client) *DedupeStore {
	return &DedupeStore{
		client: client,
		prefix: "webhook:txid:",
	}
}

// CheckAndSet atomically records key via SET NX. Returns true when the key
// was new (first delivery of this txid).
func (s *DedupeStore) CheckAndSet(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.prefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis dedupe setnx: %w", err)
	}
	return ok, nil
}

// Release drops a recorded key. Used when processing the delivery failed
// after the claim, so the provider retry is not dropped.
func (s *DedupeStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis dedupe del: %w", err)
	}
	return nil
}

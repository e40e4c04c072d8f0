package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupeStore_CheckAndSet_FirstDelivery(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewDedupeStore(client)
	ctx := context.Background()

	ok, err := store.CheckAndSet(ctx, "blockbee:tx-abc", 72*time.Hour)
	require.NoError(t, err)
	assert.True(t, ok, "first delivery should return true")
}

func TestDedupeStore_CheckAndSet_DuplicateDelivery(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewDedupeStore(client)
	ctx := context.Background()

	ok, err := store.CheckAndSet(ctx, "blockbee:tx-abc", 72*time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	// Redelivery of the same txid
	ok, err = store.CheckAndSet(ctx, "blockbee:tx-abc", 72*time.Hour)
	require.NoError(t, err)
	assert.False(t, ok, "duplicate delivery should return false")
}

func TestDedupeStore_CheckAndSet_DifferentProviders(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewDedupeStore(client)
	ctx := context.Background()

	// Same txid reported by different providers is not a duplicate
	ok1, err := store.CheckAndSet(ctx, "blockbee:tx-123", 72*time.Hour)
	require.NoError(t, err)
	assert.True(t, ok1)

	ok2, err := store.CheckAndSet(ctx, "cryptapi:tx-123", 72*time.Hour)
	require.NoError(t, err)
	assert.True(t, ok2)
}

func TestDedupeStore_CheckAndSet_ExpiredEntry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewDedupeStore(client)
	ctx := context.Background()

	ok, err := store.CheckAndSet(ctx, "blockbee:tx-old", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	// Fast-forward past TTL
	s.FastForward(2 * time.Second)

	ok, err = store.CheckAndSet(ctx, "blockbee:tx-old", time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "expired txid is treated as new; the ledger check remains authoritative")
}

func TestDedupeStore_Release_ReopensKey(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewDedupeStore(client)
	ctx := context.Background()

	ok, err := store.CheckAndSet(ctx, "blockbee:tx-abc", 72*time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Release(ctx, "blockbee:tx-abc"))

	// After a release the provider retry claims the txid again
	ok, err = store.CheckAndSet(ctx, "blockbee:tx-abc", 72*time.Hour)
	require.NoError(t, err)
	assert.True(t, ok, "released txid should be claimable again")
}

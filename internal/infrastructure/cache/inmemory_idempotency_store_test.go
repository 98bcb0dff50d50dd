package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	isNew, err := store.MarkProcessed(ctx, "payment:tx-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = store.MarkProcessed(ctx, "payment:tx-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, isNew, "second mark of the same transaction")

	processed, err := store.IsProcessed(ctx, "payment:tx-1")
	require.NoError(t, err)
	assert.True(t, processed)

	processed, err = store.IsProcessed(ctx, "payment:tx-2")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestInMemoryIdempotencyStore_Release(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "payment:tx-1", time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "payment:tx-1"))
	require.NoError(t, store.Release(ctx, "never-claimed"))

	isNew, err := store.MarkProcessed(ctx, "payment:tx-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, isNew, "a released key can be claimed again")
}

func TestInMemoryIdempotencyStore_Expiry(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	_, err := store.MarkProcessed(ctx, "short", time.Minute)
	require.NoError(t, err)
	clock = clock.Add(2 * time.Minute)

	processed, err := store.IsProcessed(ctx, "short")
	require.NoError(t, err)
	assert.False(t, processed)

	isNew, err := store.MarkProcessed(ctx, "short", time.Hour)
	require.NoError(t, err)
	assert.True(t, isNew, "an expired key can be claimed again")
}

func TestInMemoryIdempotencyStore_SweepsExpiredKeys(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	ctx := context.Background()

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	for i := 0; i < sweepEvery-1; i++ {
		_, err := store.MarkProcessed(ctx, fmt.Sprintf("old-%d", i), time.Minute)
		require.NoError(t, err)
	}
	assert.Equal(t, sweepEvery-1, store.Len())

	clock = clock.Add(time.Hour)
	_, err := store.MarkProcessed(ctx, "fresh", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	require.NoError(t, store.Close())
	assert.Zero(t, store.Len())
}

func TestInMemoryIdempotencyStore_ConcurrentMarkOnlyOnceWins(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.MarkProcessed(ctx, "payment:tx-race", time.Hour)
			if err == nil && ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestNewIdempotencyStore_FallsBackWithoutClient(t *testing.T) {
	store := NewIdempotencyStore(nil, zap.NewNop())
	defer store.Close()
	_, ok := store.(*InMemoryIdempotencyStore)
	assert.True(t, ok)
}

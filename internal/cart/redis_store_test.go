package cart

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisStore instance
func setupTestRedis(t *testing.T) *RedisStore {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client)
}

func TestRedisStore_SaveAndGet(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	cart := New("session-1")
	cart.Add(line("ram-samosa", 2500000))
	cart.Add(line("rice-16", 6000000))
	cart.SetQuantity("rice-16", 2)

	require.NoError(t, store.Save(ctx, cart))

	got, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "session-1", got.SessionID)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, int64(2500000+2*6000000), got.Total())
	assert.Equal(t, 3, got.Count())
}

func TestRedisStore_GetMissing(t *testing.T) {
	store := setupTestRedis(t)

	_, err := store.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	cart := New("session-1")
	cart.Add(line("rice-16", 6000000))
	require.NoError(t, store.Save(ctx, cart))

	require.NoError(t, store.Delete(ctx, "session-1"))

	_, err := store.Get(ctx, "session-1")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

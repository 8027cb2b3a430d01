package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *MemoryStore {
	store := NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	cart := New("session-1")
	cart.Add(line("ram-samosa", 2500000))
	require.NoError(t, store.Save(ctx, cart))

	got, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "session-1", got.SessionID)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, int64(2500000), got.Total())
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := setupStore(t)

	_, err := store.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	cart := New("session-1")
	cart.Add(line("rice-16", 6000000))
	require.NoError(t, store.Save(ctx, cart))

	first, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	first.Add(line("lamo-salad", 5000000))

	// Stored cart must be unaffected by mutations on the snapshot
	second, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Len(t, second.Lines, 1)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	cart := New("session-1")
	cart.Add(line("rice-16", 6000000))
	require.NoError(t, store.Save(ctx, cart))

	require.NoError(t, store.Delete(ctx, "session-1"))

	_, err := store.Get(ctx, "session-1")
	assert.ErrorIs(t, err, ErrCartNotFound)

	// Deleting again is not an error
	assert.NoError(t, store.Delete(ctx, "session-1"))
}

package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) *Service {
	return NewService(setupStore(t))
}

// slowStore delays loads so concurrent Gets of the same session overlap
// inside the service's singleflight window.
type slowStore struct {
	Store
	delay time.Duration
}

func (s *slowStore) Get(ctx context.Context, sessionID string) (*Cart, error) {
	time.Sleep(s.delay)
	return s.Store.Get(ctx, sessionID)
}

func TestService_Get_MissingCartIsEmpty(t *testing.T) {
	svc := setupService(t)

	cart, err := svc.Get(context.Background(), "fresh-session")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, "fresh-session", cart.SessionID)
}

func TestService_AddItem_Persists(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", line("ram-samosa", 2500000))
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "s1", line("ram-samosa", 2500000))
	require.NoError(t, err)

	assert.Equal(t, 2, cart.Count())

	reloaded, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, reloaded.Lines, 1)
	assert.Equal(t, 2, reloaded.Lines[0].Quantity)
}

func TestService_SetQuantityZero_RemovesAndPersists(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", line("rice-16", 6000000))
	require.NoError(t, err)

	cart, err := svc.SetQuantity(ctx, "s1", "rice-16", 0)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	reloaded, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, reloaded.IsEmpty())
}

func TestService_Clear(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", line("rice-16", 6000000))
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "s1"))

	reloaded, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, reloaded.IsEmpty())
}

func TestService_ConcurrentAddItem_CallersGetOwnCopy(t *testing.T) {
	store := &slowStore{Store: setupStore(t), delay: 5 * time.Millisecond}
	svc := NewService(store)
	ctx := context.Background()

	const workers = 16
	results := make([]*Cart, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.AddItem(ctx, "s1", line("ram-samosa", 2500000))
		}(i)
	}
	wg.Wait()

	// Every caller mutated its own snapshot: one coherent line, and the
	// total always matches price times quantity.
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		require.Len(t, results[i].Lines, 1)
		q := results[i].Lines[0].Quantity
		assert.GreaterOrEqual(t, q, 1)
		assert.LessOrEqual(t, q, workers)
		assert.Equal(t, int64(q)*2500000, results[i].Total())
	}

	reloaded, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, reloaded.Lines, 1)
	assert.Equal(t, int64(reloaded.Lines[0].Quantity)*2500000, reloaded.Total())
}

func TestService_OnChange_NotifiesEveryMutation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	var changed []string
	svc.OnChange(func(sessionID string) {
		changed = append(changed, sessionID)
	})

	_, err := svc.AddItem(ctx, "s1", line("a", 100))
	require.NoError(t, err)
	_, err = svc.SetQuantity(ctx, "s1", "a", 5)
	require.NoError(t, err)
	_, err = svc.RemoveItem(ctx, "s1", "a")
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "s1"))

	assert.Equal(t, []string{"s1", "s1", "s1", "s1"}, changed)
}

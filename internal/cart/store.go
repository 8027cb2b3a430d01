package cart

import (
	"context"
	"errors"
)

// Common errors returned by cart stores
var (
	ErrCartNotFound = errors.New("cart not found")
)

// Store persists session carts. Implementations: MemoryStore for a single
// instance, RedisStore when several instances share sessions.
type Store interface {
	// Get returns the cart for the session, or ErrCartNotFound.
	Get(ctx context.Context, sessionID string) (*Cart, error)

	// Save writes the cart under its session id.
	Save(ctx context.Context, cart *Cart) error

	// Delete removes the session's cart. Deleting an absent cart is not
	// an error.
	Delete(ctx context.Context, sessionID string) error
}

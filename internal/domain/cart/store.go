package cart

import "context"

// Store persists whole carts under their id, one slot per cart.
// Load returns an empty cart when the slot is absent or unreadable; callers
// never see a hydration error for bad persisted state.
type Store interface {
	Load(ctx context.Context, cartID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, cartID string) error
}

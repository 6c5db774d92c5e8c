package order

import "context"

type Repository interface {
	Create(ctx context.Context, o *Order) (*Order, error)
	// List returns orders newest first.
	List(ctx context.Context) ([]*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
}

package product

import "context"

type Repository interface {
	Create(ctx context.Context, p *Product) (*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	// List returns products newest first.
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
}

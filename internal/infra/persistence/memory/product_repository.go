package memory

import (
	"context"
	"sort"
	"sync"

	domproduct "example.com/storefront/internal/domain/product"
)

// ProductRepository is a mutex-guarded in-memory catalog, the default
// driver for development and tests.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domproduct.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: map[string]*domproduct.Product{}}
}

func (r *ProductRepository) Create(_ context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[p.ID]; ok {
		return nil, domproduct.ErrProductAlreadyExists
	}
	cp := *p
	r.products[p.ID] = &cp
	return p, nil
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*domproduct.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepository) List(_ context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domproduct.Product, 0, len(r.products))
	for _, p := range r.products {
		if !filter.Matches(p) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

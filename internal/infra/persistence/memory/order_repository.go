package memory

import (
	"context"
	"sort"
	"sync"

	domorder "example.com/storefront/internal/domain/order"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domorder.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: map[string]*domorder.Order{}}
}

func (r *OrderRepository) Create(_ context.Context, o *domorder.Order) (*domorder.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *o
	r.orders[o.ID] = &cp
	return o, nil
}

func (r *OrderRepository) List(_ context.Context) ([]*domorder.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domorder.Order, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (*domorder.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, domorder.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

package memory

import (
	"context"
	"sync"

	domcart "example.com/storefront/internal/domain/cart"
)

type CartStore struct {
	mu    sync.RWMutex
	carts map[string]domcart.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: map[string]domcart.Cart{}}
}

func (s *CartStore) Load(_ context.Context, cartID string) (*domcart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[cartID]
	if !ok {
		return domcart.New(cartID), nil
	}
	cp := c
	cp.Lines = append([]domcart.Line{}, c.Lines...)
	return &cp, nil
}

func (s *CartStore) Save(_ context.Context, c *domcart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *c
	cp.Lines = append([]domcart.Line{}, c.Lines...)
	s.carts[c.ID] = cp
	return nil
}

func (s *CartStore) Delete(_ context.Context, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, cartID)
	return nil
}

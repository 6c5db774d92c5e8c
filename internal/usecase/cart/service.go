package cart

import (
	"context"

	domcart "example.com/storefront/internal/domain/cart"
	domproduct "example.com/storefront/internal/domain/product"
)

type Store interface {
	domcart.Store
}

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*domproduct.Product, error)
}

type Service struct {
	store       Store
	productRepo ProductRepository
}

func NewService(store Store, productRepo ProductRepository) *Service {
	return &Service{
		store:       store,
		productRepo: productRepo,
	}
}

// Get hydrates the cart for cartID. An absent slot loads as an empty cart.
func (s *Service) Get(ctx context.Context, cartID string) (*domcart.Cart, error) {
	return s.store.Load(ctx, cartID)
}

// Add puts one unit of productID into the cart, merging with an existing
// line for the same product. The mutated cart is persisted before returning.
func (s *Service) Add(ctx context.Context, cartID, productID string) (*domcart.Cart, error) {
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.Add(*p)
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Remove deletes the line for productID. A missing line is not an error;
// the cart is committed either way so the persisted copy stays in step.
func (s *Service) Remove(ctx context.Context, cartID, productID string) (*domcart.Cart, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.Remove(productID)
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Empty discards the cart and erases its persisted slot entirely.
func (s *Service) Empty(ctx context.Context, cartID string) error {
	return s.store.Delete(ctx, cartID)
}

package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	domcart "example.com/storefront/internal/domain/cart"
	domorder "example.com/storefront/internal/domain/order"
)

type CartStore interface {
	domcart.Store
}

type OrderRepository interface {
	domorder.Repository
}

type Input struct {
	CustomerName string
	Email        string
	Address      string
	Phone        string
}

type Service struct {
	cartStore CartStore
	orderRepo OrderRepository
}

func NewService(cartStore CartStore, orderRepo OrderRepository) *Service {
	return &Service{
		cartStore: cartStore,
		orderRepo: orderRepo,
	}
}

// Checkout snapshots the cart into a pending order and erases the cart
// slot. An empty cart cannot be checked out.
func (s *Service) Checkout(ctx context.Context, cartID string, in Input) (*domorder.Order, error) {
	c, err := s.cartStore.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(c.Lines) == 0 {
		return nil, domorder.ErrEmptyOrder
	}

	o := &domorder.Order{
		ID:           uuid.NewString(),
		CartID:       cartID,
		Status:       domorder.StatusPending,
		Lines:        c.Lines,
		Total:        c.Total(),
		CustomerName: in.CustomerName,
		Email:        in.Email,
		Address:      in.Address,
		Phone:        in.Phone,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.orderRepo.Create(ctx, o)
	if err != nil {
		return nil, err
	}

	if err := s.cartStore.Delete(ctx, cartID); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*domorder.Order, error) {
	return s.orderRepo.List(ctx)
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domorder.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

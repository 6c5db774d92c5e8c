package order

import (
	"time"

	domcart "example.com/storefront/internal/domain/cart"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusShipped  Status = "SHIPPED"
	StatusCanceled Status = "CANCELED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusCanceled:
		return true
	default:
		return false
	}
}

type Order struct {
	ID           string
	CartID       string
	Status       Status
	Lines        []domcart.Line
	Total        float64
	CustomerName string
	Email        string
	Address      string
	Phone        string
	CreatedAt    time.Time
}

package importer

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("no product found for external id")
	ErrNotConfigured = errors.New("import source is not configured")
)

// Draft is the product payload assembled from an external workspace-tool
// row. Optional fields default rather than fail: empty string, zero, nil,
// false.
type Draft struct {
	ID               string
	Name             string
	Brand            string
	Price            float64
	OriginalPrice    *float64
	Rating           float64
	ShortDescription string
	FullDescription  string
	Color            *string
	Category         string
	Subcategory      string
	Seller           string
	HasStock         bool
	Stock            *int64
	Image            string
	Images           []string
}

// Source resolves an external numeric id to a product draft. It reports
// ErrNotFound when no row matches and ErrNotConfigured when credentials
// are absent.
type Source interface {
	FetchProduct(ctx context.Context, externalID int64) (*Draft, error)
}

type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

func (s *Service) Import(ctx context.Context, externalID int64) (*Draft, error) {
	if s.source == nil {
		return nil, ErrNotConfigured
	}
	return s.source.FetchProduct(ctx, externalID)
}

package product

import (
	"fmt"
	"time"
)

// Product is a catalog entry. The ID is assigned by the caller (admin form
// or import source), not by the store.
type Product struct {
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
	CreatedAt        time.Time
}

type ListFilter struct {
	Category    string
	Subcategory string
}

func (p *Product) Validate() error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: id is required", ErrProductInvalid)
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrProductInvalid)
	case p.Category == "":
		return fmt.Errorf("%w: category is required", ErrProductInvalid)
	case p.Subcategory == "":
		return fmt.Errorf("%w: subcategory is required", ErrProductInvalid)
	case p.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrProductInvalid)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrProductInvalid)
	}
	return nil
}

func (f ListFilter) Matches(p *Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Subcategory != "" && p.Subcategory != f.Subcategory {
		return false
	}
	return true
}

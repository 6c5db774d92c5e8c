package catalog

import (
	"math"
	"sort"
	"strconv"

	domproduct "example.com/storefront/internal/domain/product"
)

type SortKey string

const (
	SortPriceLowToHigh SortKey = "priceLowToHigh"
	SortPriceHighToLow SortKey = "priceHighToLow"
	SortRating         SortKey = "rating"
	SortNewest         SortKey = "newest"
)

// PriceRange is an inclusive price window. A nil bound is open: nil Min
// means 0, nil Max means unbounded.
type PriceRange struct {
	Min *float64
	Max *float64
}

func (r PriceRange) isSet() bool {
	return r.Min != nil || r.Max != nil
}

func (r PriceRange) contains(price float64) bool {
	min := 0.0
	if r.Min != nil {
		min = *r.Min
	}
	max := math.Inf(1)
	if r.Max != nil {
		max = *r.Max
	}
	return price >= min && price <= max
}

type Criteria struct {
	Sort  SortKey
	Price PriceRange
}

// DeriveView recomputes the presented product list from the full base list:
// price filter first, then exactly one sort. The base slice is never
// mutated; unrecognized sort keys keep the base order.
func DeriveView(base []*domproduct.Product, c Criteria) []*domproduct.Product {
	view := make([]*domproduct.Product, 0, len(base))
	if c.Price.isSet() {
		for _, p := range base {
			if c.Price.contains(p.Price) {
				view = append(view, p)
			}
		}
	} else {
		view = append(view, base...)
	}

	switch c.Sort {
	case SortPriceLowToHigh:
		sort.SliceStable(view, func(i, j int) bool { return view[i].Price < view[j].Price })
	case SortPriceHighToLow:
		sort.SliceStable(view, func(i, j int) bool { return view[i].Price > view[j].Price })
	case SortRating:
		sort.SliceStable(view, func(i, j int) bool { return view[i].Rating > view[j].Rating })
	case SortNewest:
		sort.SliceStable(view, func(i, j int) bool { return newerID(view[i].ID, view[j].ID) })
	}

	return view
}

// newerID orders ids descending: numerically when both parse as numbers,
// lexicographically otherwise. The mixed case is pairwise, so the relation
// is not a total order over heterogeneous id sets; the stable sort keeps
// the outcome deterministic for a fixed input.
func newerID(a, b string) bool {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return na > nb
	}
	return a > b
}

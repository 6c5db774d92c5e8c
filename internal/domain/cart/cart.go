package cart

import (
	domproduct "example.com/storefront/internal/domain/product"
)

// Line is one cart entry: a snapshot of the product as it was when first
// added, plus a quantity. The snapshot is intentionally not refreshed on
// later reads.
type Line struct {
	Product  domproduct.Product
	Quantity int64
}

type Cart struct {
	ID    string
	Lines []Line
}

func New(id string) *Cart {
	return &Cart{ID: id, Lines: []Line{}}
}

// Add merges by product id: an existing line gets its quantity incremented
// by one in place, a new product is appended. Insertion order of distinct
// products is preserved.
func (c *Cart) Add(p domproduct.Product) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == p.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, Line{Product: p, Quantity: 1})
}

// Remove drops the line holding productID. Absent ids are a no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Empty() {
	c.Lines = []Line{}
}

func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.Product.Price * float64(l.Quantity)
	}
	return total
}

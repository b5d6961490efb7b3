package cart

import (
	"github.com/google/uuid"

	product "github.com/rlipkart/storefront-backend/internal/products"
)

// Line pairs a catalog product with a quantity of at least 1.
type Line struct {
	Product  product.ProductDTO `json:"product"`
	Quantity int                `json:"quantity"`
}

// Cart is an order-preserving collection of lines, at most one per
// product id. The zero value is an empty cart.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add merges into an existing line for the same product id, otherwise
// appends a new line with quantity 1. Positions of existing lines never
// change.
func (c *Cart) Add(p product.ProductDTO) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == p.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, Line{Product: p, Quantity: 1})
}

// UpdateQuantity sets the matching line's quantity. Quantities below 1
// are rejected as a guard, leaving the cart unchanged; a missing id is
// a no-op.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line with the matching id if present.
func (c *Cart) Remove(productID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Total sums price times quantity over all lines.
func (c *Cart) Total() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Product.Price * line.Quantity
	}
	return total
}

// Count sums quantities across lines, distinct from the line count.
func (c *Cart) Count() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

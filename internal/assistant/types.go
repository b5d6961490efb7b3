package assistant

import (
	product "github.com/rlipkart/storefront-backend/internal/products"
)

// Context carries the per-session state the engine reads and updates.
// Respond returns a new Context rather than mutating the caller's copy.
type Context struct {
	Budget        *int     `json:"budget,omitempty"`
	Preferences   []string `json:"preferences,omitempty"`
	Authenticated bool     `json:"-"`
}

// Reply is either plain text or text with an attached ranked product list.
type Reply struct {
	Text     string               `json:"text"`
	Products []product.ProductDTO `json:"products,omitempty"`
}

// HasProducts reports whether the reply carries a product list.
func (r Reply) HasProducts() bool {
	return len(r.Products) > 0
}

package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	product "github.com/rlipkart/storefront-backend/internal/products"
)

// checkoutAck is the placeholder acknowledgement returned until a real
// order pipeline exists.
const checkoutAck = "Checkout functionality would be implemented here!"

// CartDTO is the cart representation returned to clients.
type CartDTO struct {
	Lines []Line `json:"lines"`
	Total int    `json:"total"`
	Count int    `json:"count"`
}

// CheckoutResult carries the acknowledgement for a completed checkout.
type CheckoutResult struct {
	Message string `json:"message"`
	Total   int    `json:"total"`
	Count   int    `json:"count"`
}

type productGetter interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*product.ProductDTO, error)
}

// Service exposes cart operations keyed by owner. An owner is a user id
// for signed-in shoppers or a guest token otherwise.
type Service interface {
	GetCart(ctx context.Context, ownerID string) (*CartDTO, error)
	AddItem(ctx context.Context, ownerID string, productID uuid.UUID) (*CartDTO, error)
	UpdateQuantity(ctx context.Context, ownerID string, productID uuid.UUID, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, ownerID string, productID uuid.UUID) (*CartDTO, error)
	Checkout(ctx context.Context, ownerID string) (*CheckoutResult, error)
}

type service struct {
	store   *Store
	catalog productGetter
}

// NewService constructs a cart service instance.
func NewService(store *Store, catalog productGetter) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	return &service{store: store, catalog: catalog}, nil
}

func (s *service) GetCart(ctx context.Context, ownerID string) (*CartDTO, error) {
	c, err := s.store.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return newCartDTO(c), nil
}

// AddItem resolves the product against the catalog and merges it into
// the owner's cart.
func (s *service) AddItem(ctx context.Context, ownerID string, productID uuid.UUID) (*CartDTO, error) {
	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	c, err := s.store.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	c.Add(*p)
	if err := s.store.Save(ctx, ownerID, c); err != nil {
		return nil, err
	}
	return newCartDTO(c), nil
}

// UpdateQuantity applies the quantity guard semantics of Cart: requests
// below 1 and unknown ids leave the cart unchanged rather than failing.
func (s *service) UpdateQuantity(ctx context.Context, ownerID string, productID uuid.UUID, quantity int) (*CartDTO, error) {
	c, err := s.store.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	c.UpdateQuantity(productID, quantity)
	if err := s.store.Save(ctx, ownerID, c); err != nil {
		return nil, err
	}
	return newCartDTO(c), nil
}

func (s *service) RemoveItem(ctx context.Context, ownerID string, productID uuid.UUID) (*CartDTO, error) {
	c, err := s.store.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	c.Remove(productID)
	if err := s.store.Save(ctx, ownerID, c); err != nil {
		return nil, err
	}
	return newCartDTO(c), nil
}

// Checkout acknowledges the order and clears the cart unconditionally.
// No payment, inventory, or order placement happens here.
func (s *service) Checkout(ctx context.Context, ownerID string) (*CheckoutResult, error) {
	c, err := s.store.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	result := &CheckoutResult{
		Message: checkoutAck,
		Total:   c.Total(),
		Count:   c.Count(),
	}
	if err := s.store.Delete(ctx, ownerID); err != nil {
		return nil, err
	}
	return result, nil
}

func newCartDTO(c *Cart) *CartDTO {
	lines := c.Lines
	if lines == nil {
		lines = []Line{}
	}
	return &CartDTO{
		Lines: lines,
		Total: c.Total(),
		Count: c.Count(),
	}
}

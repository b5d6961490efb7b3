package cart

import (
	"testing"

	"github.com/google/uuid"

	product "github.com/rlipkart/storefront-backend/internal/products"
)

func listing(name string, price int) product.ProductDTO {
	return product.ProductDTO{ID: uuid.New(), Name: name, Price: price}
}

func TestAddMergesDuplicateProduct(t *testing.T) {
	p := listing("Wireless Headphones", 1000)
	var c Cart
	c.Add(p)
	c.Add(p)

	if len(c.Lines) != 1 {
		t.Fatalf("expected 1 merged line, got %d", len(c.Lines))
	}
	if c.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", c.Lines[0].Quantity)
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	first := listing("First", 100)
	second := listing("Second", 200)
	var c Cart
	c.Add(first)
	c.Add(second)
	c.Add(first)

	if len(c.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(c.Lines))
	}
	if c.Lines[0].Product.ID != first.ID || c.Lines[1].Product.ID != second.ID {
		t.Fatal("expected merge to keep the original line position")
	}
}

func TestUpdateQuantityBelowOneIsRejected(t *testing.T) {
	p := listing("Sneakers", 900)
	var c Cart
	c.Add(p)

	c.UpdateQuantity(p.ID, 0)
	if c.Lines[0].Quantity != 1 {
		t.Fatalf("expected guard to keep quantity 1, got %d", c.Lines[0].Quantity)
	}

	c.UpdateQuantity(p.ID, -3)
	if c.Lines[0].Quantity != 1 {
		t.Fatalf("expected guard to keep quantity 1, got %d", c.Lines[0].Quantity)
	}

	c.UpdateQuantity(p.ID, 5)
	if c.Lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", c.Lines[0].Quantity)
	}
}

func TestUpdateAndRemoveUnknownIDAreNoOps(t *testing.T) {
	p := listing("Watch", 3500)
	var c Cart
	c.Add(p)

	c.UpdateQuantity(uuid.New(), 4)
	c.Remove(uuid.New())

	if len(c.Lines) != 1 || c.Lines[0].Quantity != 1 {
		t.Fatalf("expected cart unchanged, got %+v", c.Lines)
	}
}

func TestRemoveDeletesLineEntirely(t *testing.T) {
	first := listing("First", 100)
	second := listing("Second", 200)
	var c Cart
	c.Add(first)
	c.Add(second)

	c.Remove(first.ID)
	if len(c.Lines) != 1 || c.Lines[0].Product.ID != second.ID {
		t.Fatalf("expected only second line, got %+v", c.Lines)
	}
}

func TestTotalIsLinear(t *testing.T) {
	var c Cart
	if c.Total() != 0 {
		t.Fatalf("expected empty cart total 0, got %d", c.Total())
	}

	headphones := listing("Wireless Headphones", 1000)
	sneakers := listing("Sneakers", 900)
	c.Add(headphones)
	c.Add(headphones)
	c.Add(headphones)
	c.Add(sneakers)

	if got := c.Total(); got != 3*1000+900 {
		t.Fatalf("expected total 3900, got %d", got)
	}
}

func TestCountSumsQuantitiesNotLines(t *testing.T) {
	p := listing("Mug", 250)
	other := listing("Plate", 400)
	var c Cart
	c.Add(p)
	c.Add(p)
	c.Add(other)

	if got := c.Count(); got != 3 {
		t.Fatalf("expected count 3, got %d", got)
	}
	if len(c.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(c.Lines))
	}
}

package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/rlipkart/storefront-backend/pkg/db/models"
	"github.com/rlipkart/storefront-backend/pkg/enums"
)

// ProductDTO is the catalog representation returned to clients.
type ProductDTO struct {
	ID          uuid.UUID             `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Category    enums.ProductCategory `json:"category"`
	Price       int                   `json:"price"`
	Rating      float64               `json:"rating"`
	ImageURL    string                `json:"image_url"`
	CreatedAt   time.Time             `json:"created_at"`
}

// NewProductDTO maps a product row to its API shape.
func NewProductDTO(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Rating:      p.Rating,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
}

// NewProductDTOs maps a slice of product rows.
func NewProductDTOs(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewProductDTO(&rows[i]))
	}
	return out
}

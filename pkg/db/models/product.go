package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rlipkart/storefront-backend/pkg/enums"
)

// Product represents one catalog listing. Prices are whole currency units
// (rupees), ratings run 0-5.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string                `gorm:"column:name;not null" json:"name"`
	Description string                `gorm:"column:description;not null" json:"description"`
	Category    enums.ProductCategory `gorm:"column:category;not null" json:"category"`
	Price       int                   `gorm:"column:price;not null" json:"price"`
	Rating      float64               `gorm:"column:rating;not null;default:0" json:"rating"`
	ImageURL    string                `gorm:"column:image_url;not null" json:"image_url"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

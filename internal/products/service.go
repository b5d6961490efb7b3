package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rlipkart/storefront-backend/pkg/enums"
	pkgerrors "github.com/rlipkart/storefront-backend/pkg/errors"
)

// Service exposes catalog read operations.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
}

// ListProductsInput narrows a catalog listing.
type ListProductsInput struct {
	Category string
	Search   string
	Limit    int
}

const maxCatalogLimit = 200

type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

// ListProducts lists catalog rows newest first with optional category and
// free-text search filters. Search matches name, description or category.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) ([]ProductDTO, error) {
	q := catalogQuery{Search: input.Search, Limit: input.Limit}
	if q.Limit <= 0 || q.Limit > maxCatalogLimit {
		q.Limit = maxCatalogLimit
	}

	if raw := strings.TrimSpace(input.Category); raw != "" {
		category, err := enums.ParseProductCategory(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
		}
		q.Category = &category
	}

	rows, err := s.repo.ListCatalog(ctx, q)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list catalog")
	}
	return NewProductDTOs(rows), nil
}

// GetProduct loads a single catalog entry.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return NewProductDTO(row), nil
}

package product

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rlipkart/storefront-backend/pkg/db/models"
	"github.com/rlipkart/storefront-backend/pkg/enums"
	pkgerrors "github.com/rlipkart/storefront-backend/pkg/errors"
)

const productsDDL = `
CREATE TABLE products (
    id text PRIMARY KEY,
    name text NOT NULL,
    description text NOT NULL,
    category text NOT NULL,
    price integer NOT NULL,
    rating real NOT NULL DEFAULT 0,
    image_url text NOT NULL,
    created_at datetime NOT NULL,
    updated_at datetime NOT NULL
)`

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.Exec("DROP TABLE IF EXISTS products").Error; err != nil {
		t.Fatalf("drop products: %v", err)
	}
	if err := gdb.Exec(productsDDL).Error; err != nil {
		t.Fatalf("create products: %v", err)
	}
	return gdb
}

func mustCreateTestProduct(t *testing.T, repo *Repository, name string, category enums.ProductCategory, price int, createdAt time.Time) *models.Product {
	t.Helper()
	row := &models.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: "test listing",
		Category:    category,
		Price:       price,
		Rating:      4.2,
		ImageURL:    "https://cdn.rlipkart.com/img/" + uuid.NewString(),
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	created, err := repo.CreateProduct(context.Background(), row)
	if err != nil {
		t.Fatalf("create product %s: %v", name, err)
	}
	return created
}

func TestListProductsNewestFirst(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	mustCreateTestProduct(t, repo, "Wireless Headphones", enums.ProductCategoryElectronics, 1800, base)
	mustCreateTestProduct(t, repo, "Running Shoes", enums.ProductCategoryFootwear, 2200, base.Add(time.Hour))
	mustCreateTestProduct(t, repo, "Denim Jacket", enums.ProductCategoryClothing, 1500, base.Add(2*time.Hour))

	rows, err := svc.ListProducts(context.Background(), ListProductsInput{})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 products, got %d", len(rows))
	}
	if rows[0].Name != "Denim Jacket" || rows[2].Name != "Wireless Headphones" {
		t.Fatalf("expected newest first ordering, got %s .. %s", rows[0].Name, rows[2].Name)
	}
}

func TestListProductsCategoryFilter(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	mustCreateTestProduct(t, repo, "Wireless Headphones", enums.ProductCategoryElectronics, 1800, base)
	mustCreateTestProduct(t, repo, "Yoga Mat", enums.ProductCategorySports, 600, base.Add(time.Minute))

	rows, err := svc.ListProducts(context.Background(), ListProductsInput{
		Category: enums.ProductCategorySports.String(),
	})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Yoga Mat" {
		t.Fatalf("expected only the sports product, got %v", rows)
	}
}

func TestListProductsRejectsUnknownCategory(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.ListProducts(context.Background(), ListProductsInput{Category: "Groceries"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error code, got %v", err)
	}
}

func TestListProductsSearchIsCaseInsensitive(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	mustCreateTestProduct(t, repo, "Wireless Headphones", enums.ProductCategoryElectronics, 1800, base)
	mustCreateTestProduct(t, repo, "Denim Jacket", enums.ProductCategoryClothing, 1500, base.Add(time.Minute))

	rows, err := svc.ListProducts(context.Background(), ListProductsInput{Search: "  HEADPHONES "})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Wireless Headphones" {
		t.Fatalf("expected headphone match, got %v", rows)
	}
}

func TestListProductsSearchSpansDescriptionAndCategory(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	watch := mustCreateTestProduct(t, repo, "Smart Watch", enums.ProductCategoryElectronics, 4499, base)
	watch.Description = "Fitness tracking with heart rate monitor"
	if err := repo.db.Save(watch).Error; err != nil {
		t.Fatalf("update description: %v", err)
	}
	mustCreateTestProduct(t, repo, "Denim Jacket", enums.ProductCategoryClothing, 1500, base.Add(time.Minute))
	mustCreateTestProduct(t, repo, "Cotton T-Shirt", enums.ProductCategoryClothing, 499, base.Add(2*time.Minute))

	rows, err := svc.ListProducts(context.Background(), ListProductsInput{Search: "fitness"})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Smart Watch" {
		t.Fatalf("expected description match, got %v", rows)
	}

	rows, err = svc.ListProducts(context.Background(), ListProductsInput{Search: "clothing"})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected both clothing products by category term, got %v", rows)
	}
}

func TestGetProductNotFound(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.GetProduct(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected not found error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestGetProductRoundTrip(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	created := mustCreateTestProduct(t, repo, "Smart Watch", enums.ProductCategoryElectronics, 3500, time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC))

	got, err := svc.GetProduct(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.ID != created.ID || got.Name != "Smart Watch" || got.Price != 3500 {
		t.Fatalf("unexpected product: %+v", got)
	}
}

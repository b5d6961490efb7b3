package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	productsvc "github.com/rlipkart/storefront-backend/internal/products"
	"github.com/rlipkart/storefront-backend/pkg/config"
	"github.com/rlipkart/storefront-backend/pkg/db"
	"github.com/rlipkart/storefront-backend/pkg/db/models"
	"github.com/rlipkart/storefront-backend/pkg/enums"
	"github.com/rlipkart/storefront-backend/pkg/logger"
)

// demoCatalog mirrors the storefront's launch inventory. Prices are in rupees.
var demoCatalog = []models.Product{
	{Name: "Wireless Headphones", Description: "Over-ear Bluetooth headphones with active noise cancellation", Category: enums.ProductCategoryElectronics, Price: 2999, Rating: 4.5, ImageURL: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e"},
	{Name: "Smart Watch", Description: "Fitness tracking smartwatch with heart rate monitor", Category: enums.ProductCategoryElectronics, Price: 4499, Rating: 4.7, ImageURL: "https://images.unsplash.com/photo-1523275335684-37898b6baf30"},
	{Name: "Smartphone Pro Max", Description: "Flagship smartphone with triple camera setup", Category: enums.ProductCategoryElectronics, Price: 49999, Rating: 4.8, ImageURL: "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9"},
	{Name: "Running Shoes", Description: "Lightweight running shoes with breathable mesh", Category: enums.ProductCategoryFootwear, Price: 2499, Rating: 4.3, ImageURL: "https://images.unsplash.com/photo-1542291026-7eec264c27ff"},
	{Name: "Casual Sneakers", Description: "Everyday sneakers in classic white", Category: enums.ProductCategoryFootwear, Price: 1799, Rating: 4.1, ImageURL: "https://images.unsplash.com/photo-1549298916-b41d501d3772"},
	{Name: "Cotton T-Shirt", Description: "Soft cotton crew neck t-shirt", Category: enums.ProductCategoryClothing, Price: 599, Rating: 4.0, ImageURL: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab"},
	{Name: "Denim Jacket", Description: "Classic fit denim jacket with button closure", Category: enums.ProductCategoryClothing, Price: 1999, Rating: 4.4, ImageURL: "https://images.unsplash.com/photo-1551537482-f2075a1d41f2"},
	{Name: "Yoga Mat", Description: "Non-slip exercise mat with carrying strap", Category: enums.ProductCategorySports, Price: 899, Rating: 4.2, ImageURL: "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b"},
	{Name: "Cricket Bat", Description: "English willow cricket bat, full size", Category: enums.ProductCategorySports, Price: 3499, Rating: 4.6, ImageURL: "https://images.unsplash.com/photo-1531415074968-036ba1b575da"},
	{Name: "Ceramic Dinner Set", Description: "18-piece ceramic dinner set for six", Category: enums.ProductCategoryHomeKitchen, Price: 2799, Rating: 4.5, ImageURL: "https://images.unsplash.com/photo-1556911220-bff31c812dba"},
	{Name: "Non-Stick Cookware Set", Description: "5-piece non-stick cookware set with glass lids", Category: enums.ProductCategoryHomeKitchen, Price: 3299, Rating: 4.3, ImageURL: "https://images.unsplash.com/photo-1584990347449-a2d4c2c044ea"},
	{Name: "Leather Wallet", Description: "Slim bifold wallet in genuine leather", Category: enums.ProductCategoryAccessories, Price: 1299, Rating: 4.4, ImageURL: "https://images.unsplash.com/photo-1627123424574-724758594e93"},
	{Name: "Sunglasses", Description: "Polarized UV-protection sunglasses", Category: enums.ProductCategoryAccessories, Price: 999, Rating: 3.9, ImageURL: "https://images.unsplash.com/photo-1572635196237-14b3f281503f"},
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	repo := productsvc.NewRepository(dbClient.DB())

	existing, err := repo.CountProducts(ctx)
	if err != nil {
		logg.Error(ctx, "failed to count products", err)
		os.Exit(1)
	}
	if existing > 0 {
		ctx = logg.WithField(ctx, "count", existing)
		logg.Info(ctx, "catalog already seeded, nothing to do")
		return
	}

	var errs error
	seeded := 0
	for i := range demoCatalog {
		if _, err := repo.CreateProduct(ctx, &demoCatalog[i]); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("seed %q: %w", demoCatalog[i].Name, err))
			continue
		}
		seeded++
	}

	ctx = logg.WithField(ctx, "seeded", seeded)
	if errs != nil {
		logg.Error(ctx, "catalog seed finished with errors", errs)
		os.Exit(1)
	}
	logg.Info(ctx, "catalog seed complete")
}

// Package seed fills an empty catalog with sample data.
package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mytheresa/product-catalog/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Fixture describes the category and product Populate creates. A nil
// Vendor is replaced by a fresh id on insert.
type Fixture struct {
	CategoryName string
	ProductName  string
	Price        decimal.Decimal
	Vendor       uuid.UUID
}

var DefaultFixture = Fixture{
	CategoryName: "Fashion",
	ProductName:  "Levi Jeans",
	Price:        decimal.RequireFromString("12.99"),
}

// Populate inserts one category and one product in a single transaction.
// If the product cannot be written the category is rolled back too. Every
// call creates new rows.
func Populate(ctx context.Context, db *gorm.DB, f Fixture) (*models.Category, *models.Product, error) {
	category := &models.Category{Name: f.CategoryName}
	product := &models.Product{
		Name:   f.ProductName,
		Price:  f.Price,
		Vendor: f.Vendor,
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := models.NewCategoriesRepository(tx).CreateCategory(ctx, category); err != nil {
			return fmt.Errorf("create category: %w", err)
		}
		product.CategoryID = category.ID
		if err := models.NewProductsRepository(tx).CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return category, product, nil
}

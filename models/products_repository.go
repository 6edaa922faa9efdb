package models

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

type ProductFilters struct {
	CategoryID    *uuid.UUID
	CategoryName  string
	PriceLessThan *float64
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetAllProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Order("name, id").
		Find(&products).Error; err != nil {
		return nil, translateError("list products", err)
	}
	return products, nil
}

func (r *ProductsRepository) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Product{}).Count(&total).Error; err != nil {
		return 0, translateError("count products", err)
	}
	return total, nil
}

func (r *ProductsRepository) GetFilteredProducts(ctx context.Context, offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	filtered := func(db *gorm.DB) *gorm.DB {
		query := db.Model(&Product{}).
			Joins("LEFT JOIN categories ON categories.id = products.category_id")

		// Filter
		if filters.CategoryID != nil {
			query = query.Where("products.category_id = ?", *filters.CategoryID)
		}
		if filters.CategoryName != "" {
			query = query.Where("categories.name = ?", filters.CategoryName)
		}
		if filters.PriceLessThan != nil {
			query = query.Where("products.price < ?", *filters.PriceLessThan)
		}
		return query
	}

	db := r.db.WithContext(ctx)

	// Count total after filtering
	if err := filtered(db).Count(&total).Error; err != nil {
		return nil, 0, translateError("count products", err)
	}

	// Apply pagination
	if err := filtered(db).
		Select("products.*").
		Preload("Category").
		Order("products.name, products.id").
		Offset(offset).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, 0, translateError("list products", err)
	}

	return products, total, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, translateError("get product", err) // Other DB error
	}
	return &product, nil
}

// CreateProduct inserts the product after checking that its category
// exists. On success product.Category holds the referenced category.
func (r *ProductsRepository) CreateProduct(ctx context.Context, product *Product) error {
	if err := Validate(product); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := lookupCategory(tx, product.CategoryID)
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return translateError("create product", err)
		}
		product.Category = *category
		return nil
	})
}

// UpdateProduct overwrites every writable column of an existing product.
func (r *ProductsRepository) UpdateProduct(ctx context.Context, product *Product) error {
	if err := Validate(product); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := lookupCategory(tx, product.CategoryID)
		if err != nil {
			return err
		}
		res := tx.Model(&Product{ID: product.ID}).
			Select("CategoryID", "Name", "Price", "Vendor").
			Omit(clause.Associations).
			Updates(product)
		if res.Error != nil {
			return translateError("update product", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		product.Category = *category
		return nil
	})
}

func (r *ProductsRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Product{})
	if res.Error != nil {
		return translateError("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// lookupCategory resolves a product's category reference inside tx.
func lookupCategory(tx *gorm.DB, id uuid.UUID) (*Category, error) {
	var category Category
	if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryReference
		}
		return nil, translateError("lookup category", err)
	}
	return &category, nil
}

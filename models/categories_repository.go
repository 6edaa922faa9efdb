package models

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

func (r *CategoriesRepository) GetAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("name, id").Find(&categories).Error; err != nil {
		return nil, translateError("list categories", err)
	}
	return categories, nil
}

func (r *CategoriesRepository) CountCategories(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Category{}).Count(&total).Error; err != nil {
		return 0, translateError("count categories", err)
	}
	return total, nil
}

func (r *CategoriesRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, translateError("get category", err)
	}
	return &category, nil
}

func (r *CategoriesRepository) CreateCategory(ctx context.Context, category *Category) error {
	if err := Validate(category); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(category).Error; err != nil {
		return translateError("create category", err)
	}
	return nil
}

func (r *CategoriesRepository) UpdateCategory(ctx context.Context, category *Category) error {
	if err := Validate(category); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Model(&Category{ID: category.ID}).
		Update("name", category.Name)
	if res.Error != nil {
		return translateError("update category", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// DeleteCategory removes the category and every product in it, returning
// the number of products removed. The foreign key also cascades, the
// explicit delete keeps the behaviour on engines without FK enforcement.
func (r *CategoriesRepository) DeleteCategory(ctx context.Context, id uuid.UUID) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category Category
		if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return translateError("get category", err)
		}

		res := tx.Where("category_id = ?", id).Delete(&Product{})
		if res.Error != nil {
			return translateError("delete category products", res.Error)
		}
		removed = res.RowsAffected

		if err := tx.Delete(&category).Error; err != nil {
			return translateError("delete category", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

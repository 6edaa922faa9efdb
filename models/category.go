package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a product category.
// Deleting a category deletes every product that references it.
type Category struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(20);not null" validate:"required,max=20"`
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" validate:"-"`
}

func (c *Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

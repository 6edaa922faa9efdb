package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the catalog.
// Vendor is an opaque identifier; no vendor table backs it.
type Product struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index" validate:"required"`
	Category   Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" validate:"-"`
	Name       string          `gorm:"type:varchar(20);not null" validate:"required,max=20"`
	Price      decimal.Decimal `gorm:"type:decimal(20,2);not null" validate:"max_digits=20,decimal_places=2,max_whole_digits=18"`
	Vendor     uuid.UUID       `gorm:"type:uuid;not null"`
}

func (p *Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Vendor == uuid.Nil {
		p.Vendor = uuid.New()
	}
	return nil
}

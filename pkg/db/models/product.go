package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/tradedir-backend/pkg/enums"
)

// Product is a vendor listing in the directory.
type Product struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	VendorID    uuid.UUID           `gorm:"column:vendor_id;type:uuid;not null;index"`
	Vendor      *Vendor             `gorm:"foreignKey:VendorID"`
	CategoryID  *uuid.UUID          `gorm:"column:category_id;type:uuid;index"`
	Name        string              `gorm:"column:name;not null"`
	Description *string             `gorm:"column:description"`
	Price       decimal.Decimal     `gorm:"column:price;type:numeric(12,2);not null;default:0"`
	Status      enums.ProductStatus `gorm:"column:status;type:text;not null;default:'DRAFT'"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

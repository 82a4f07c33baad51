package models

import (
	"time"

	"github.com/google/uuid"
)

// Vendor is a seller storefront in the directory.
type Vendor struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	CompanyName string     `gorm:"column:company_name;not null"`
	StateID     *uuid.UUID `gorm:"column:state_id;type:uuid;index"`
	CityID      *uuid.UUID `gorm:"column:city_id;type:uuid;index"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

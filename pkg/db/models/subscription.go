package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/tradedir-backend/pkg/enums"
)

// Subscription records a vendor's claim to a plan for a time window. A nil
// EndDate means open-ended.
type Subscription struct {
	ID        uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	VendorID  uuid.UUID                `gorm:"column:vendor_id;type:uuid;not null;index"`
	PlanID    uuid.UUID                `gorm:"column:plan_id;type:uuid;not null"`
	Plan      *Plan                    `gorm:"foreignKey:PlanID"`
	Status    enums.SubscriptionStatus `gorm:"column:status;type:text;not null;default:'PENDING'"`
	StartDate time.Time                `gorm:"column:start_date;not null"`
	EndDate   *time.Time               `gorm:"column:end_date"`
	CreatedAt time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

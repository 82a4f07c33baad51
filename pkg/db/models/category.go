package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/tradedir-backend/pkg/enums"
)

// Category is a node in the head > sub > micro taxonomy.
type Category struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	Name      string              `gorm:"column:name;not null"`
	Slug      string              `gorm:"column:slug;not null;uniqueIndex"`
	Level     enums.CategoryLevel `gorm:"column:level;type:text;not null"`
	ParentID  *uuid.UUID          `gorm:"column:parent_id;type:uuid;index"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

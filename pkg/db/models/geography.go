package models

import (
	"time"

	"github.com/google/uuid"
)

// State is a first-level geographic region used by the location filter.
type State struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// City belongs to a State.
type City struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	StateID   uuid.UUID `gorm:"column:state_id;type:uuid;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

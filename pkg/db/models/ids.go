package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Every table keys on a client-generated UUID so the same models migrate on
// Postgres and on SQLite (tests, local dev).
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (v *Vendor) BeforeCreate(*gorm.DB) error       { ensureID(&v.ID); return nil }
func (p *Plan) BeforeCreate(*gorm.DB) error         { ensureID(&p.ID); return nil }
func (s *Subscription) BeforeCreate(*gorm.DB) error { ensureID(&s.ID); return nil }
func (c *Category) BeforeCreate(*gorm.DB) error     { ensureID(&c.ID); return nil }
func (p *Product) BeforeCreate(*gorm.DB) error      { ensureID(&p.ID); return nil }
func (s *State) BeforeCreate(*gorm.DB) error        { ensureID(&s.ID); return nil }
func (c *City) BeforeCreate(*gorm.DB) error         { ensureID(&c.ID); return nil }

// All lists every model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&State{},
		&City{},
		&Vendor{},
		&Plan{},
		&Subscription{},
		&Category{},
		&Product{},
	}
}

package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base is embedded by the directory repositories. It holds the shared gorm
// handle and binds it to the request context so query cancellation follows
// the HTTP request.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the handle bound to ctx. A nil ctx yields the unbound handle.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

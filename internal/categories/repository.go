package categories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/angelmondragon/tradedir-backend/internal/repo"
	"github.com/angelmondragon/tradedir-backend/pkg/db/models"
	"github.com/angelmondragon/tradedir-backend/pkg/enums"
)

// Repository looks categories up by slug.
type Repository interface {
	FindMicroBySlug(ctx context.Context, slug string) (*models.Category, error)
}

// GormRepository reads the categories table.
type GormRepository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{Base: repo.NewBase(db)}
}

// FindMicroBySlug returns the micro-level category with slug, or nil when
// there is none.
func (r *GormRepository) FindMicroBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.DB(ctx).
		Where("slug = ? AND level = ?", slug, enums.CategoryLevelMicro).
		Take(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

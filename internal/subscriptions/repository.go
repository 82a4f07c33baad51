package subscriptions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/tradedir-backend/internal/repo"
	"github.com/angelmondragon/tradedir-backend/pkg/enums"
)

// ActiveRow is one currently active subscription with its plan name.
type ActiveRow struct {
	VendorID  uuid.UUID
	PlanID    uuid.UUID
	PlanName  string
	StartDate time.Time
}

// Repository lists the subscriptions that count toward directory ranking.
type Repository interface {
	ListActive(ctx context.Context, now time.Time) ([]ActiveRow, error)
}

// GormRepository reads subscriptions joined with their plans.
type GormRepository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{Base: repo.NewBase(db)}
}

// ListActive returns ACTIVE subscriptions that have not ended at now, most
// recently started first. Equal start dates fall back to the newest row.
func (r *GormRepository) ListActive(ctx context.Context, now time.Time) ([]ActiveRow, error) {
	var rows []ActiveRow
	err := r.DB(ctx).
		Table("subscriptions AS s").
		Select("s.vendor_id, s.plan_id, p.name AS plan_name, s.start_date").
		Joins("JOIN plans p ON p.id = s.plan_id").
		Where("s.status = ?", enums.SubscriptionStatusActive).
		Where("(s.end_date IS NULL OR s.end_date > ?)", now).
		Order("s.start_date DESC").
		Order("s.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

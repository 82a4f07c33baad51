package directory

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/tradedir-backend/internal/repo"
	"github.com/angelmondragon/tradedir-backend/pkg/enums"
)

// ListingSource counts and slices ACTIVE listings under a scope.
type ListingSource interface {
	Count(ctx context.Context, scope Scope) (int64, error)
	Fetch(ctx context.Context, scope Scope, offset, limit int) ([]Listing, error)
}

// Repository is the gorm-backed ListingSource.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *Repository) scoped(ctx context.Context, scope Scope) *gorm.DB {
	qb := r.DB(ctx).
		Table("products AS p").
		Joins("JOIN vendors v ON v.id = p.vendor_id").
		Where("p.status = ?", enums.ProductStatusActive)

	filter := scope.Filters
	if filter.CategoryID != nil {
		qb = qb.Where("p.category_id = ?", *filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Query); search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		qb = qb.Where(`LOWER(p.name) LIKE ? ESCAPE '\'`, pattern)
	}
	if filter.StateID != nil {
		qb = qb.Where("v.state_id = ?", *filter.StateID)
	}
	if filter.CityID != nil {
		qb = qb.Where("v.city_id = ?", *filter.CityID)
	}

	switch {
	case len(scope.Vendors.Include) > 0:
		qb = qb.Where("p.vendor_id IN ?", scope.Vendors.Include)
	case len(scope.Vendors.Exclude) > 0:
		qb = qb.Where("p.vendor_id NOT IN ?", scope.Vendors.Exclude)
	}
	return qb
}

// Count returns the exact number of listings matching scope.
func (r *Repository) Count(ctx context.Context, scope Scope) (int64, error) {
	var n int64
	if err := r.scoped(ctx, scope).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Fetch returns up to limit listings matching scope, starting at offset, in
// the scope's sort order.
func (r *Repository) Fetch(ctx context.Context, scope Scope, offset, limit int) ([]Listing, error) {
	if limit <= 0 {
		return []Listing{}, nil
	}

	qb := r.scoped(ctx, scope).
		Select(strings.Join([]string{
			"p.id",
			"p.vendor_id",
			"v.company_name AS vendor_name",
			"p.category_id",
			"p.name",
			"p.description",
			"p.price",
			"p.created_at",
		}, ", "))
	for _, clause := range orderClauses(scope.Filters.Sort) {
		qb = qb.Order(clause)
	}

	var records []listingRecord
	if err := qb.Offset(offset).Limit(limit).Scan(&records).Error; err != nil {
		return nil, err
	}

	out := make([]Listing, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toListing())
	}
	return out, nil
}

// orderClauses maps a sort mode onto ORDER BY terms. The id term only makes
// repeated requests stable; the sort mode alone decides the visible order.
func orderClauses(sort enums.ProductSort) []string {
	switch sort {
	case enums.ProductSortPriceAsc:
		return []string{"p.price ASC", "p.id ASC"}
	case enums.ProductSortPriceDesc:
		return []string{"p.price DESC", "p.id DESC"}
	default:
		return []string{"p.created_at DESC", "p.id DESC"}
	}
}

type listingRecord struct {
	ID          uuid.UUID
	VendorID    uuid.UUID
	VendorName  string
	CategoryID  *uuid.UUID
	Name        string
	Description sql.NullString
	Price       decimal.Decimal
	CreatedAt   time.Time
}

func (r listingRecord) toListing() Listing {
	var description *string
	if r.Description.Valid {
		v := r.Description.String
		description = &v
	}
	return Listing{
		ID:          r.ID,
		VendorID:    r.VendorID,
		VendorName:  r.VendorName,
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Description: description,
		Price:       r.Price,
		CreatedAt:   r.CreatedAt,
	}
}

// Package dbtest opens migrated in-memory SQLite databases and seeds directory
// fixtures for repository and service tests.
package dbtest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/tradedir-backend/pkg/db/models"
	"github.com/angelmondragon/tradedir-backend/pkg/enums"
)

// Open returns a migrated database private to t.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString()[:8])
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return conn
}

// Vendor inserts a vendor with the given company name.
func Vendor(t *testing.T, db *gorm.DB, name string) *models.Vendor {
	t.Helper()
	v := &models.Vendor{CompanyName: name}
	mustCreate(t, db, v)
	return v
}

// LocatedVendor inserts a vendor in the given state and city.
func LocatedVendor(t *testing.T, db *gorm.DB, name string, stateID, cityID *uuid.UUID) *models.Vendor {
	t.Helper()
	v := &models.Vendor{CompanyName: name, StateID: stateID, CityID: cityID}
	mustCreate(t, db, v)
	return v
}

// Plan inserts a plan with the given display name.
func Plan(t *testing.T, db *gorm.DB, name string) *models.Plan {
	t.Helper()
	p := &models.Plan{Name: name, PriceAmount: decimal.NewFromInt(99)}
	mustCreate(t, db, p)
	return p
}

// SubscriptionOpts customises a seeded subscription.
type SubscriptionOpts struct {
	Status    enums.SubscriptionStatus
	StartDate time.Time
	EndDate   *time.Time
}

// Subscription links vendor and plan. Zero opts produce an ACTIVE,
// open-ended subscription that started a day before 2026-01-01.
func Subscription(t *testing.T, db *gorm.DB, vendorID, planID uuid.UUID, opts SubscriptionOpts) *models.Subscription {
	t.Helper()
	if opts.Status == "" {
		opts.Status = enums.SubscriptionStatusActive
	}
	if opts.StartDate.IsZero() {
		opts.StartDate = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	s := &models.Subscription{
		VendorID:  vendorID,
		PlanID:    planID,
		Status:    opts.Status,
		StartDate: opts.StartDate,
		EndDate:   opts.EndDate,
	}
	mustCreate(t, db, s)
	return s
}

// Category inserts a category at the given level.
func Category(t *testing.T, db *gorm.DB, slug string, level enums.CategoryLevel, parentID *uuid.UUID) *models.Category {
	t.Helper()
	c := &models.Category{Name: slug, Slug: slug, Level: level, ParentID: parentID}
	mustCreate(t, db, c)
	return c
}

// ProductOpts customises a seeded product.
type ProductOpts struct {
	CategoryID *uuid.UUID
	Price      decimal.Decimal
	Status     enums.ProductStatus
	CreatedAt  time.Time
}

// Product inserts a listing for vendorID. Zero opts produce an ACTIVE listing.
func Product(t *testing.T, db *gorm.DB, vendorID uuid.UUID, name string, opts ProductOpts) *models.Product {
	t.Helper()
	if opts.Status == "" {
		opts.Status = enums.ProductStatusActive
	}
	p := &models.Product{
		VendorID:   vendorID,
		CategoryID: opts.CategoryID,
		Name:       name,
		Price:      opts.Price,
		Status:     opts.Status,
		CreatedAt:  opts.CreatedAt,
	}
	mustCreate(t, db, p)
	return p
}

// Products inserts n ACTIVE listings named "<prefix> <i>" with strictly
// decreasing creation times, so newest-first order matches i.
func Products(t *testing.T, db *gorm.DB, vendorID uuid.UUID, prefix string, n int) []*models.Product {
	t.Helper()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	out := make([]*models.Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Product(t, db, vendorID, fmt.Sprintf("%s %d", prefix, i), ProductOpts{
			Price:     decimal.NewFromInt(int64(10 + i)),
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		}))
	}
	return out
}

func mustCreate(t *testing.T, db *gorm.DB, value any) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

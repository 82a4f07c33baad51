package directory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/tradedir-backend/pkg/enums"
)

// Filters narrow the searchable listings. Nil ids mean "any".
type Filters struct {
	Query      string
	CategoryID *uuid.UUID
	StateID    *uuid.UUID
	CityID     *uuid.UUID
	Sort       enums.ProductSort
}

// VendorScope restricts a query to, or away from, a vendor id set. At most
// one of the lists is set; both empty means every vendor.
type VendorScope struct {
	Include []uuid.UUID
	Exclude []uuid.UUID
}

// Scope is a listing query: the request filters plus a vendor restriction.
type Scope struct {
	Filters Filters
	Vendors VendorScope
}

// Listing is one searchable product as returned to clients. The plan fields
// are filled in after pagination from the vendor's tier assignment.
type Listing struct {
	ID           uuid.UUID       `json:"id"`
	VendorID     uuid.UUID       `json:"vendor_id"`
	VendorName   string          `json:"vendor_name"`
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	CreatedAt    time.Time       `json:"created_at"`
	PlanName     string          `json:"plan_name"`
	Tier         string          `json:"tier"`
	TierPriority int             `json:"tier_priority"`
}

// ResultPage is one page of the ranked directory plus the total number of
// matches across every tier.
type ResultPage struct {
	Listings []Listing
	Count    int64
	Page     int
	Limit    int
}

package subscriptions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/angelmondragon/tradedir-backend/pkg/errors"
	"github.com/angelmondragon/tradedir-backend/pkg/logger"
	"github.com/angelmondragon/tradedir-backend/pkg/tiers"
)

// Assignment is the plan a vendor ranks under.
type Assignment struct {
	PlanName string
	Tier     tiers.Tier
}

// Assignments maps vendors with an active subscription to their tier. Vendors
// without one are absent.
type Assignments struct {
	byVendor map[uuid.UUID]Assignment
	order    []uuid.UUID
}

// NewAssignments returns an empty set.
func NewAssignments() *Assignments {
	return &Assignments{byVendor: map[uuid.UUID]Assignment{}}
}

// Add records vendorID under planName unless the vendor already has an
// assignment. It reports whether the entry was stored.
func (a *Assignments) Add(vendorID uuid.UUID, planName string) bool {
	if _, ok := a.byVendor[vendorID]; ok {
		return false
	}
	a.byVendor[vendorID] = Assignment{PlanName: planName, Tier: tiers.Classify(planName)}
	a.order = append(a.order, vendorID)
	return true
}

// Lookup returns the vendor's assignment.
func (a *Assignments) Lookup(vendorID uuid.UUID) (Assignment, bool) {
	if a == nil {
		return Assignment{}, false
	}
	got, ok := a.byVendor[vendorID]
	return got, ok
}

// PlanName returns the vendor's resolved plan name.
func (a *Assignments) PlanName(vendorID uuid.UUID) (string, bool) {
	got, ok := a.Lookup(vendorID)
	return got.PlanName, ok
}

// Tier returns the vendor's tier.
func (a *Assignments) Tier(vendorID uuid.UUID) (tiers.Tier, bool) {
	got, ok := a.Lookup(vendorID)
	return got.Tier, ok
}

// Len returns the number of assigned vendors.
func (a *Assignments) Len() int {
	if a == nil {
		return 0
	}
	return len(a.order)
}

// VendorIDs returns every assigned vendor in resolution order.
func (a *Assignments) VendorIDs() []uuid.UUID {
	if a == nil {
		return nil
	}
	return append([]uuid.UUID(nil), a.order...)
}

// ByTier groups assigned vendors per tier, preserving resolution order.
func (a *Assignments) ByTier() map[tiers.Tier][]uuid.UUID {
	out := map[tiers.Tier][]uuid.UUID{}
	if a == nil {
		return out
	}
	for _, id := range a.order {
		t := a.byVendor[id].Tier
		out[t] = append(out[t], id)
	}
	return out
}

// Resolver turns active subscriptions into per-vendor tier assignments.
type Resolver struct {
	repo Repository
	logg *logger.Logger
}

// NewResolver wires a resolver around the subscription repository.
func NewResolver(repo Repository, logg *logger.Logger) (*Resolver, error) {
	if repo == nil {
		return nil, errors.New("subscription repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Resolver{repo: repo, logg: logg}, nil
}

// Resolve assigns each vendor the plan of its most recently started active
// subscription at now.
func (r *Resolver) Resolve(ctx context.Context, now time.Time) (*Assignments, error) {
	rows, err := r.repo.ListActive(ctx, now)
	if err != nil {
		return nil, pkgerrors.Query(err, "failed to resolve active subscriptions")
	}

	out := NewAssignments()
	shadowed := 0
	for _, row := range rows {
		if !out.Add(row.VendorID, row.PlanName) {
			shadowed++
			vctx := r.logg.WithVendorID(ctx, row.VendorID.String())
			r.logg.Debug(r.logg.WithField(vctx, "plan_name", row.PlanName), "subscriptions.shadowed")
		}
	}

	r.logg.Debug(r.logg.WithFields(ctx, map[string]any{
		"active_subscriptions": len(rows),
		"assigned_vendors":     out.Len(),
		"shadowed":             shadowed,
	}), "subscriptions.resolved")
	return out, nil
}

package subscriptions

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/tradedir-backend/pkg/db/dbtest"
	"github.com/angelmondragon/tradedir-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/tradedir-backend/pkg/errors"
	"github.com/angelmondragon/tradedir-backend/pkg/logger"
	"github.com/angelmondragon/tradedir-backend/pkg/tiers"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestResolveAssignsMostRecentActivePlan(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	diamond := dbtest.Plan(t, db, "Diamond Annual")
	gold := dbtest.Plan(t, db, "Gold Monthly")
	startup := dbtest.Plan(t, db, "Startup Pack")

	switched := dbtest.Vendor(t, db, "Switched Co")
	dbtest.Subscription(t, db, switched.ID, gold.ID, dbtest.SubscriptionOpts{StartDate: now.AddDate(0, -6, 0)})
	dbtest.Subscription(t, db, switched.ID, diamond.ID, dbtest.SubscriptionOpts{StartDate: now.AddDate(0, -1, 0)})

	lapsed := dbtest.Vendor(t, db, "Lapsed Co")
	ended := now.Add(-time.Hour)
	dbtest.Subscription(t, db, lapsed.ID, diamond.ID, dbtest.SubscriptionOpts{EndDate: &ended})

	running := dbtest.Vendor(t, db, "Running Co")
	later := now.AddDate(0, 1, 0)
	dbtest.Subscription(t, db, running.ID, startup.ID, dbtest.SubscriptionOpts{EndDate: &later})

	cancelled := dbtest.Vendor(t, db, "Cancelled Co")
	dbtest.Subscription(t, db, cancelled.ID, gold.ID, dbtest.SubscriptionOpts{Status: enums.SubscriptionStatusCancelled})

	dbtest.Vendor(t, db, "Never Subscribed")

	resolver, err := NewResolver(NewRepository(db), logger.Nop())
	require.NoError(t, err)

	got, err := resolver.Resolve(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())

	plan, ok := got.PlanName(switched.ID)
	require.True(t, ok)
	require.Equal(t, "Diamond Annual", plan)
	tier, _ := got.Tier(switched.ID)
	require.Equal(t, tiers.Diamond, tier)

	tier, ok = got.Tier(running.ID)
	require.True(t, ok)
	require.Equal(t, tiers.Startup, tier)

	_, ok = got.Lookup(lapsed.ID)
	require.False(t, ok, "ended subscriptions fall to the remainder")
	_, ok = got.Lookup(cancelled.ID)
	require.False(t, ok)

	require.ElementsMatch(t, []uuid.UUID{switched.ID, running.ID}, got.VendorIDs())
}

func TestResolveLogsShadowedSubscriptions(t *testing.T) {
	db := dbtest.Open(t)
	gold := dbtest.Plan(t, db, "Gold Monthly")
	startup := dbtest.Plan(t, db, "Startup Pack")
	vendor := dbtest.Vendor(t, db, "Upgraded Co")
	dbtest.Subscription(t, db, vendor.ID, startup.ID, dbtest.SubscriptionOpts{StartDate: now.AddDate(0, -3, 0)})
	dbtest.Subscription(t, db, vendor.ID, gold.ID, dbtest.SubscriptionOpts{StartDate: now.AddDate(0, 0, -2)})

	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: buf})
	resolver, err := NewResolver(NewRepository(db), logg)
	require.NoError(t, err)

	got, err := resolver.Resolve(context.Background(), now)
	require.NoError(t, err)
	plan, _ := got.PlanName(vendor.ID)
	require.Equal(t, "Gold Monthly", plan)

	out := buf.String()
	require.Contains(t, out, `"message":"subscriptions.shadowed"`)
	require.Contains(t, out, `"vendor_id":"`+vendor.ID.String()+`"`)
	require.Contains(t, out, `"plan_name":"Startup Pack"`)
	require.Contains(t, out, `"shadowed":1`)
}

func TestResolveEndDateBoundaryIsExclusive(t *testing.T) {
	db := dbtest.Open(t)
	plan := dbtest.Plan(t, db, "Silver")
	vendor := dbtest.Vendor(t, db, "Edge Co")
	end := now
	dbtest.Subscription(t, db, vendor.ID, plan.ID, dbtest.SubscriptionOpts{EndDate: &end})

	resolver, err := NewResolver(NewRepository(db), nil)
	require.NoError(t, err)

	got, err := resolver.Resolve(context.Background(), now)
	require.NoError(t, err)
	require.Zero(t, got.Len())

	got, err = resolver.Resolve(context.Background(), now.Add(-time.Second))
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
}

func TestResolveWrapsRepositoryFailure(t *testing.T) {
	resolver, err := NewResolver(failingRepo{err: errors.New("relation \"subscriptions\" does not exist")}, nil)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), now)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeQuery, typed.Code())
	require.Equal(t, "relation \"subscriptions\" does not exist", typed.Details())
}

func TestAssignmentsFirstSeenWins(t *testing.T) {
	a := NewAssignments()
	id := uuid.New()
	require.True(t, a.Add(id, "Gold"))
	require.False(t, a.Add(id, "Diamond"))

	name, _ := a.PlanName(id)
	require.Equal(t, "Gold", name)

	other := uuid.New()
	a.Add(other, "Free listing")
	grouped := a.ByTier()
	require.Equal(t, []uuid.UUID{id}, grouped[tiers.Gold])
	require.Equal(t, []uuid.UUID{other}, grouped[tiers.Trial])
}

func TestNewResolverRequiresRepository(t *testing.T) {
	_, err := NewResolver(nil, nil)
	require.Error(t, err)
}

type failingRepo struct {
	err error
}

func (f failingRepo) ListActive(context.Context, time.Time) ([]ActiveRow, error) {
	return nil, f.err
}

package directory

import (
	"github.com/angelmondragon/tradedir-backend/internal/subscriptions"
	"github.com/angelmondragon/tradedir-backend/pkg/tiers"
)

// annotate attaches each listing's plan name and tier. Vendors without an
// assignment are shown as Trial.
func annotate(rows []Listing, assignments *subscriptions.Assignments) []Listing {
	for i := range rows {
		tier := tiers.Trial
		planName := tiers.Trial.Label()
		if got, ok := assignments.Lookup(rows[i].VendorID); ok {
			tier = got.Tier
			planName = got.PlanName
		}
		rows[i].PlanName = planName
		rows[i].Tier = tier.Label()
		rows[i].TierPriority = tier.Priority()
	}
	return rows
}

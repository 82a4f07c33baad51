package tiers

import "strings"

type keywordRule struct {
	tier     Tier
	keywords []string
}

// Rule order is the tie-break for plan names that mention several tiers:
// "Gold Certified" is Gold.
var keywordRules = []keywordRule{
	{tier: Diamond, keywords: []string{"diamond"}},
	{tier: Gold, keywords: []string{"gold"}},
	{tier: Silver, keywords: []string{"silver"}},
	{tier: Booster, keywords: []string{"booster", "boost"}},
	{tier: Certified, keywords: []string{"certified", "certificate"}},
	{tier: Startup, keywords: []string{"startup"}},
	{tier: Trial, keywords: []string{"trial", "free"}},
}

// Classify maps a plan display name onto a tier. It never fails: empty or
// unrecognised names are Trial.
func Classify(planName string) Tier {
	name := strings.ToLower(strings.TrimSpace(planName))
	if name == "" {
		return Trial
	}
	for _, rule := range keywordRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(name, keyword) {
				return rule.tier
			}
		}
	}
	return Trial
}

// Package tiers defines the fixed subscription tiers that rank vendors in the
// public directory and maps free-text plan names onto them.
package tiers

import (
	"fmt"
	"strings"
)

// Tier is one of the seven directory ranking classes. The zero value is not a
// valid tier.
type Tier uint8

// Declaration order is priority order, highest first.
const (
	Diamond Tier = iota + 1
	Gold
	Silver
	Booster
	Certified
	Startup
	Trial
)

type definition struct {
	key      string
	label    string
	priority int
}

var definitions = [...]definition{
	Diamond:   {key: "diamond", label: "Diamond", priority: 700},
	Gold:      {key: "gold", label: "Gold", priority: 600},
	Silver:    {key: "silver", label: "Silver", priority: 500},
	Booster:   {key: "booster", label: "Booster", priority: 400},
	Certified: {key: "certified", label: "Certified", priority: 300},
	Startup:   {key: "startup", label: "Startup", priority: 200},
	Trial:     {key: "trial", label: "Trial", priority: 100},
}

// Count is the number of defined tiers.
const Count = int(Trial)

// Ordered returns every tier from highest to lowest priority. The slice is
// freshly allocated on each call.
func Ordered() []Tier {
	out := make([]Tier, 0, Count)
	for t := Diamond; t <= Trial; t++ {
		out = append(out, t)
	}
	return out
}

// IsValid reports whether t is one of the defined tiers.
func (t Tier) IsValid() bool {
	return t >= Diamond && t <= Trial
}

// String implements fmt.Stringer and returns the stable lowercase key.
func (t Tier) String() string {
	if !t.IsValid() {
		return fmt.Sprintf("tier(%d)", uint8(t))
	}
	return definitions[t].key
}

// Key returns the stable lowercase identifier, e.g. "gold".
func (t Tier) Key() string {
	if !t.IsValid() {
		return ""
	}
	return definitions[t].key
}

// Label returns the display name, e.g. "Gold".
func (t Tier) Label() string {
	if !t.IsValid() {
		return ""
	}
	return definitions[t].label
}

// Priority returns the ranking weight; higher is shown first.
func (t Tier) Priority() int {
	if !t.IsValid() {
		return 0
	}
	return definitions[t].priority
}

// Parse converts a tier key back into a Tier.
func Parse(value string) (Tier, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	for _, t := range Ordered() {
		if definitions[t].key == key {
			return t, nil
		}
	}
	return 0, fmt.Errorf("invalid tier %q", value)
}

// Descriptor is the serialisable view of a tier.
type Descriptor struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Priority int    `json:"priority"`
}

// Describe returns the descriptor for t.
func (t Tier) Describe() Descriptor {
	return Descriptor{Key: t.Key(), Label: t.Label(), Priority: t.Priority()}
}

// Table returns descriptors for every tier in priority order.
func Table() []Descriptor {
	ordered := Ordered()
	out := make([]Descriptor, len(ordered))
	for i, t := range ordered {
		out[i] = t.Describe()
	}
	return out
}

// Package budget implements the allocation engine: it turns a lump-sum budget
// into per-category records according to configurable weights, and groups
// previously generated plans for browsing.
package budget

import "sort"

// Category identifies one of the fixed spending categories.
type Category string

const (
	CategoryFood           Category = "food"
	CategoryUtilities      Category = "utilities"
	CategoryTransportation Category = "transportation"
	CategoryEntertainment  Category = "entertainment"
	CategoryPersonal       Category = "personal"
	CategoryHealth         Category = "health"
	CategoryEducation      Category = "education"
	CategoryOther          Category = "other"
)

// displayNames maps category identifiers to their user-facing labels.
var displayNames = map[Category]string{
	CategoryFood:           "Food & Dining",
	CategoryUtilities:      "Housing & Utilities",
	CategoryTransportation: "Transportation",
	CategoryEntertainment:  "Entertainment",
	CategoryPersonal:       "Personal Care",
	CategoryHealth:         "Healthcare",
	CategoryEducation:      "Education",
	CategoryOther:          "Other Expenses",
}

// DisplayName returns the user-facing label for a category, falling back to
// the raw identifier for unknown values.
func DisplayName(c Category) string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

// IsValidCategory reports whether c is one of the fixed categories.
func IsValidCategory(c Category) bool {
	_, ok := displayNames[c]
	return ok
}

// Allocation is one category's share of the weight table. Percentages are
// entered as whole numbers (25 = 25%) and need not sum to 100; the engine
// normalizes them at generation time. A disabled category is excluded from
// generation entirely, not zeroed.
type Allocation struct {
	Enabled    bool    `json:"enabled"`
	Percentage float64 `json:"percentage"`
}

// Weights is the configured category allocation table.
type Weights map[Category]Allocation

// DefaultWeights returns the built-in allocation table used when the user has
// not configured one.
func DefaultWeights() Weights {
	return Weights{
		CategoryFood:           {Enabled: true, Percentage: 25},
		CategoryUtilities:      {Enabled: true, Percentage: 35},
		CategoryTransportation: {Enabled: true, Percentage: 15},
		CategoryEntertainment:  {Enabled: true, Percentage: 10},
		CategoryPersonal:       {Enabled: true, Percentage: 5},
		CategoryHealth:         {Enabled: true, Percentage: 5},
		CategoryEducation:      {Enabled: true, Percentage: 3},
		CategoryOther:          {Enabled: true, Percentage: 2},
	}
}

// enabled returns the enabled categories in display-name order, so generation
// is deterministic.
func (w Weights) enabled() []Category {
	var out []Category
	for c, a := range w {
		if a.Enabled && a.Percentage > 0 {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return DisplayName(out[i]) < DisplayName(out[j])
	})
	return out
}

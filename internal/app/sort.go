package app

import (
	"sort"

	"travelgo/internal/domain"
)

// SortActivities returns a new slice ordered by the given key. The input is
// never mutated, and sorting is stable so ties keep catalog insertion order.
func SortActivities(items []domain.Activity, by domain.SortKey) []domain.Activity {
	sorted := make([]domain.Activity, len(items))
	copy(sorted, items)
	if len(sorted) <= 1 {
		return sorted
	}

	switch by {
	case domain.SortPriceLow:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	case domain.SortPriceHigh:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price > sorted[j].Price })
	case domain.SortRating:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rating > sorted[j].Rating })
	default: // popular
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ReviewCount > sorted[j].ReviewCount })
	}
	return sorted
}

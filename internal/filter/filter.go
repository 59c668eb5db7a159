// Package filter narrows and orders an already-fetched restaurant list.
// Apply is a pure function of (list, state); an empty result is a valid
// outcome, not an error.
package filter

import (
	"sort"

	"github.com/munch-hunt/api/internal/munch"
)

// OpenValue is the only accepted open-status filter value on the wire.
const OpenValue = "Open"

// State holds the four filter dimensions. A nil field means "no constraint
// from this dimension"; setting the same value twice on the client clears it.
type State struct {
	Price         *string
	DistanceMiles *float64
	Rating        *int
	Open          *bool
}

// IsZero reports whether no dimension is constrained.
func (s State) IsZero() bool {
	return s.Price == nil && s.DistanceMiles == nil && s.Rating == nil && s.Open == nil
}

// Apply filters the list by every active dimension, then sorts descending by
// distance when a distance filter is active. With no active dimensions the
// input is returned as-is.
//
// Two deliberate oddities are preserved from the product's current behavior:
// an exact integer rating matches no rating bucket (the bucket is the open
// interval (n, n+1)), and the distance-filtered list is ordered farthest
// first.
func Apply(list []munch.Restaurant, state State) []munch.Restaurant {
	if state.IsZero() {
		return list
	}

	results := make([]munch.Restaurant, 0, len(list))
	for _, r := range list {
		if matches(r, state) {
			results = append(results, r)
		}
	}

	if state.DistanceMiles != nil {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Distance > results[j].Distance
		})
	}

	return results
}

func matches(r munch.Restaurant, state State) bool {
	if state.Price != nil && (r.Price == "" || r.Price != *state.Price) {
		return false
	}

	// When the "Open" filter is active, keep records whose closed flag
	// differs from it. The double negative carries the polarity.
	if state.Open != nil && r.IsClosed == *state.Open {
		return false
	}

	if state.DistanceMiles != nil && r.DistanceMiles() > *state.DistanceMiles {
		return false
	}

	if state.Rating != nil {
		lower := float64(*state.Rating)
		if !(r.Rating > lower && r.Rating < lower+1) {
			return false
		}
	}

	return true
}

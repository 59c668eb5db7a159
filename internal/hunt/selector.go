package hunt

import (
	"errors"
	"math/rand"
	"slices"
)

// ShortlistLimit caps how many candidates the auto path draws.
const ShortlistLimit = 8

// Rejection sampling over a near-exhausted pool can in theory spin for a long
// time, so the draw loop carries a hard attempt cap per picked item and fills
// the remainder deterministically if it ever trips. A safety valve only; it
// does not change the observable contract.
const maxDrawAttemptsPerItem = 64

// ErrEmptyCategoryPool is returned when there is nothing left to draw from:
// either no categories were supplied or the user excluded all of them.
var ErrEmptyCategoryPool = errors.New("no categories available to choose from")

// Result is the outcome of a hunt. Shortlist is only populated on the auto
// path, in draw order.
type Result struct {
	Choice    string   `json:"choice"`
	Shortlist []string `json:"shortlist,omitempty"`
}

// Selector resolves a selection into a single cuisine choice.
type Selector struct {
	intn func(n int) int
}

// Option configures a Selector.
type Option func(*Selector)

// WithIntn overrides the random index source, used for deterministic tests.
func WithIntn(intn func(n int) int) Option {
	return func(s *Selector) {
		s.intn = intn
	}
}

// NewSelector builds a selector backed by math/rand by default.
func NewSelector(opts ...Option) *Selector {
	s := &Selector{intn: rand.Intn}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve produces the final cuisine choice for one hunt.
//
// With explicit selections the choice is drawn uniformly from them. With no
// selections the pool is the available list minus exclusions; a shortlist of
// min(ShortlistLimit, pool) distinct items is drawn without replacement, and
// the choice is drawn uniformly from the shortlist.
func (s *Selector) Resolve(state *SelectionState, available []string) (Result, error) {
	if state != nil && len(state.Selected) > 0 {
		return Result{Choice: state.Selected[s.intn(len(state.Selected))]}, nil
	}

	pool := available
	if state != nil && len(state.Excluded) > 0 {
		pool = make([]string, 0, len(available))
		for _, category := range available {
			if !slices.Contains(state.Excluded, category) {
				pool = append(pool, category)
			}
		}
	}
	if len(pool) == 0 {
		return Result{}, ErrEmptyCategoryPool
	}

	shortlist := s.drawDistinct(pool, min(ShortlistLimit, len(pool)))
	return Result{
		Choice:    shortlist[s.intn(len(shortlist))],
		Shortlist: shortlist,
	}, nil
}

// drawDistinct picks k distinct items from pool by rejection sampling with a
// visited-index set.
func (s *Selector) drawDistinct(pool []string, k int) []string {
	visited := make(map[int]struct{}, k)
	picked := make([]string, 0, k)

	attempts := 0
	for len(picked) < k && attempts < k*maxDrawAttemptsPerItem {
		attempts++
		idx := s.intn(len(pool))
		if _, seen := visited[idx]; seen {
			continue
		}
		visited[idx] = struct{}{}
		picked = append(picked, pool[idx])
	}

	// Cap tripped: fill the remainder in pool order.
	for idx := 0; len(picked) < k && idx < len(pool); idx++ {
		if _, seen := visited[idx]; seen {
			continue
		}
		visited[idx] = struct{}{}
		picked = append(picked, pool[idx])
	}

	return picked
}

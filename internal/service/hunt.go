package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/munch-hunt/api/internal/hunt"
	"github.com/munch-hunt/api/internal/repository"
)

// HuntService orchestrates one hunt: the in-memory selection state, the
// random resolution and the durable record of the outcome.
type HuntService struct {
	store    *hunt.Store
	selector *hunt.Selector
	repo     repository.SessionsRepository
}

// NewHuntService creates a new instance of HuntService. repo may be nil when
// the API runs without persistence; outcomes are then not recorded.
func NewHuntService(store *hunt.Store, selector *hunt.Selector, repo repository.SessionsRepository) *HuntService {
	return &HuntService{store: store, selector: selector, repo: repo}
}

// StartSelection creates or replaces the session's selection state.
func (s *HuntService) StartSelection(id uuid.UUID) *hunt.SelectionState {
	return s.store.Reset(id.String())
}

// Selection returns the session's current selection state.
func (s *HuntService) Selection(id uuid.UUID) (*hunt.SelectionState, error) {
	return s.store.Get(id.String())
}

// Toggle cycles one category through neutral, selected and excluded.
func (s *HuntService) Toggle(id uuid.UUID, category string) (*hunt.SelectionState, error) {
	return s.store.Toggle(id.String(), category)
}

// ClearExcluded returns every excluded category to neutral.
func (s *HuntService) ClearExcluded(id uuid.UUID) (*hunt.SelectionState, error) {
	return s.store.ClearExcluded(id.String())
}

// Resolve runs the hunt for a session against the available categories,
// records the outcome and discards the selection state. Only one resolve may
// be in flight per session.
func (s *HuntService) Resolve(ctx context.Context, id uuid.UUID, available []string) (hunt.Result, error) {
	sessionID := id.String()

	state, err := s.store.BeginResolve(sessionID)
	if err != nil {
		return hunt.Result{}, err
	}

	result, err := s.selector.Resolve(state, available)
	if err != nil {
		s.store.EndResolve(sessionID)
		return hunt.Result{}, err
	}

	if s.repo != nil {
		if err := s.repo.SaveChoice(ctx, id, result.Choice); err != nil {
			// The draw already happened; losing the record is not worth
			// failing the hunt over.
			log.Printf("save hunt choice session=%s err=%v", sessionID, err)
		}
	}

	s.store.Drop(sessionID)
	return result, nil
}

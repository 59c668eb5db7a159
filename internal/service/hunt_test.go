package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/munch-hunt/api/internal/hunt"
	"github.com/munch-hunt/api/internal/repository"
)

func newHuntService(repo *fakeSessionsRepo, intn func(int) int) *HuntService {
	selector := hunt.NewSelector(hunt.WithIntn(intn))
	var sessions repository.SessionsRepository
	if repo != nil {
		sessions = repo
	}
	return NewHuntService(hunt.NewStore(), selector, sessions)
}

func TestHuntResolve(t *testing.T) {
	available := []string{"Thai", "Pizza", "Greek"}

	t.Run("records the outcome and discards the selection", func(t *testing.T) {
		repo := newFakeSessionsRepo()
		svc := newHuntService(repo, func(int) int { return 0 })
		sessionID := uuid.New()

		svc.StartSelection(sessionID)
		if _, err := svc.Toggle(sessionID, "Thai"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, err := svc.Resolve(context.Background(), sessionID, available)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Choice != "Thai" {
			t.Fatalf("expected the selected cuisine, got %q", result.Choice)
		}
		if len(repo.choices) != 1 || repo.choices[0] != "Thai" {
			t.Fatalf("expected the choice to be recorded, got %v", repo.choices)
		}
		if _, err := svc.Selection(sessionID); !errors.Is(err, hunt.ErrNoSelection) {
			t.Fatalf("expected the selection to be discarded, got %v", err)
		}
	})

	t.Run("empty pool surfaces the error and keeps the selection", func(t *testing.T) {
		svc := newHuntService(newFakeSessionsRepo(), func(int) int { return 0 })
		sessionID := uuid.New()

		svc.StartSelection(sessionID)
		_, err := svc.Resolve(context.Background(), sessionID, nil)
		if !errors.Is(err, hunt.ErrEmptyCategoryPool) {
			t.Fatalf("expected ErrEmptyCategoryPool, got %v", err)
		}

		// The session can try again after fixing its input.
		if _, err := svc.Resolve(context.Background(), sessionID, available); err != nil {
			t.Fatalf("retry after empty pool failed: %v", err)
		}
	})

	t.Run("no selection state", func(t *testing.T) {
		svc := newHuntService(newFakeSessionsRepo(), func(int) int { return 0 })

		_, err := svc.Resolve(context.Background(), uuid.New(), available)
		if !errors.Is(err, hunt.ErrNoSelection) {
			t.Fatalf("expected ErrNoSelection, got %v", err)
		}
	})

	t.Run("persistence failure does not fail the hunt", func(t *testing.T) {
		repo := newFakeSessionsRepo()
		repo.err = errors.New("db down")
		svc := newHuntService(repo, func(int) int { return 0 })
		sessionID := uuid.New()

		svc.StartSelection(sessionID)
		result, err := svc.Resolve(context.Background(), sessionID, available)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Choice == "" {
			t.Fatal("expected a choice despite the persistence failure")
		}
	})

	t.Run("runs without a repository", func(t *testing.T) {
		svc := newHuntService(nil, func(int) int { return 0 })
		sessionID := uuid.New()

		svc.StartSelection(sessionID)
		if _, err := svc.Resolve(context.Background(), sessionID, available); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestHuntToggleCycle(t *testing.T) {
	svc := newHuntService(newFakeSessionsRepo(), func(int) int { return 0 })
	sessionID := uuid.New()

	svc.StartSelection(sessionID)

	state, err := svc.Toggle(sessionID, "Pizza")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Selected) != 1 || state.Selected[0] != "Pizza" {
		t.Fatalf("first toggle should select, got %+v", state)
	}

	state, _ = svc.Toggle(sessionID, "Pizza")
	if len(state.Selected) != 0 || len(state.Excluded) != 1 {
		t.Fatalf("second toggle should exclude, got %+v", state)
	}

	state, _ = svc.ClearExcluded(sessionID)
	if len(state.Excluded) != 0 {
		t.Fatalf("clear should empty the excluded set, got %+v", state)
	}
}

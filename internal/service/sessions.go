package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/munch-hunt/api/internal/entity"
	"github.com/munch-hunt/api/internal/munch"
	"github.com/munch-hunt/api/internal/repository"
)

// ErrInvalidTheme rejects theme values outside the supported pair.
var ErrInvalidTheme = errors.New(`theme must be "dark" or "light"`)

// SessionsService owns the durable per-session state: location, resolved
// choice and theme. Each field has exactly one mutator.
type SessionsService struct {
	repo repository.SessionsRepository
}

// NewSessionsService creates a new instance of SessionsService.
func NewSessionsService(repo repository.SessionsRepository) *SessionsService {
	return &SessionsService{repo: repo}
}

// Create starts a fresh anonymous session.
func (s *SessionsService) Create(ctx context.Context) (*entity.Session, error) {
	return s.repo.Create(ctx)
}

// Get returns the session's stored state.
func (s *SessionsService) Get(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	return s.repo.Get(ctx, id)
}

// SaveLocation stores the session's coordinates after validating the
// both-or-none invariant.
func (s *SessionsService) SaveLocation(ctx context.Context, id uuid.UUID, coords munch.Coordinate) error {
	if err := coords.Validate(); err != nil {
		return err
	}
	if !coords.IsSet() {
		return fmt.Errorf("coordinates are required")
	}
	return s.repo.SaveLocation(ctx, id, coords)
}

// ResetLocation clears the stored coordinates and, with them, the resolved
// choice: a hunt is only meaningful relative to a location.
func (s *SessionsService) ResetLocation(ctx context.Context, id uuid.UUID) error {
	return s.repo.ClearLocation(ctx, id)
}

// SaveTheme stores the theme preference.
func (s *SessionsService) SaveTheme(ctx context.Context, id uuid.UUID, theme string) error {
	if theme != "dark" && theme != "light" {
		return ErrInvalidTheme
	}
	return s.repo.SaveTheme(ctx, id, theme)
}

// History lists the session's past resolved hunts, newest first.
func (s *SessionsService) History(ctx context.Context, id uuid.UUID, limit int) ([]entity.HuntEvent, error) {
	return s.repo.History(ctx, id, limit)
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/munch-hunt/api/internal/entity"
	"github.com/munch-hunt/api/internal/munch"
)

// ErrSessionNotFound is returned when no session matches the lookup.
var ErrSessionNotFound = errors.New("session not found")

// SessionsRepository describes persistence for per-user durable state.
type SessionsRepository interface {
	Create(ctx context.Context) (*entity.Session, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	SaveLocation(ctx context.Context, id uuid.UUID, coords munch.Coordinate) error
	ClearLocation(ctx context.Context, id uuid.UUID) error
	SaveChoice(ctx context.Context, id uuid.UUID, cuisine string) error
	SaveTheme(ctx context.Context, id uuid.UUID, theme string) error
	History(ctx context.Context, id uuid.UUID, limit int) ([]entity.HuntEvent, error)
}

// pgxPool is the subset of pgxpool.Pool the repository needs; tests stub it.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// PGXSessionsRepository implements SessionsRepository using pgx.
type PGXSessionsRepository struct {
	pool pgxPool
}

// NewPGXSessionsRepository wires a pgx backed repository.
func NewPGXSessionsRepository(pool *pgxpool.Pool) *PGXSessionsRepository {
	return &PGXSessionsRepository{pool: pool}
}

// Create inserts an empty session row and returns it.
func (r *PGXSessionsRepository) Create(ctx context.Context) (*entity.Session, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO sessions (id) VALUES ($1)
        RETURNING id, latitude, longitude, choice, theme, created_at, updated_at
    `, uuid.New())

	return scanSession(row)
}

// Get fetches a session by identifier.
func (r *PGXSessionsRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, latitude, longitude, choice, theme, created_at, updated_at
        FROM sessions WHERE id = $1
    `, id)

	return scanSession(row)
}

// SaveLocation overwrites the session's coordinates.
func (r *PGXSessionsRepository) SaveLocation(ctx context.Context, id uuid.UUID, coords munch.Coordinate) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE sessions SET latitude = $2, longitude = $3, updated_at = NOW()
        WHERE id = $1
    `, id, coords.Latitude, coords.Longitude)
	if err != nil {
		return fmt.Errorf("save session location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ClearLocation resets the coordinates and the resolved choice together:
// resetting location is the one action that also invalidates the choice.
func (r *PGXSessionsRepository) ClearLocation(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE sessions SET latitude = NULL, longitude = NULL, choice = NULL, updated_at = NOW()
        WHERE id = $1
    `, id)
	if err != nil {
		return fmt.Errorf("clear session location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// SaveChoice overwrites the resolved cuisine and appends a history row.
// History is best effort; the choice write is the one that matters.
func (r *PGXSessionsRepository) SaveChoice(ctx context.Context, id uuid.UUID, cuisine string) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE sessions SET choice = $2, updated_at = NOW()
        WHERE id = $1
    `, id, cuisine)
	if err != nil {
		return fmt.Errorf("save session choice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	if _, err := r.pool.Exec(ctx, `
        INSERT INTO hunt_history (id, session_id, cuisine) VALUES ($1, $2, $3)
    `, uuid.New(), id, cuisine); err != nil {
		return fmt.Errorf("append hunt history: %w", err)
	}
	return nil
}

// SaveTheme overwrites the theme preference.
func (r *PGXSessionsRepository) SaveTheme(ctx context.Context, id uuid.UUID, theme string) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE sessions SET theme = $2, updated_at = NOW()
        WHERE id = $1
    `, id, theme)
	if err != nil {
		return fmt.Errorf("save session theme: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// History lists the session's resolved hunts, newest first.
func (r *PGXSessionsRepository) History(ctx context.Context, id uuid.UUID, limit int) ([]entity.HuntEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx, `
        SELECT id, session_id, cuisine, created_at
        FROM hunt_history WHERE session_id = $1
        ORDER BY created_at DESC LIMIT $2
    `, id, limit)
	if err != nil {
		return nil, fmt.Errorf("query hunt history: %w", err)
	}
	defer rows.Close()

	var events []entity.HuntEvent
	for rows.Next() {
		var event entity.HuntEvent
		if err := rows.Scan(&event.ID, &event.SessionID, &event.Cuisine, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan hunt history row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hunt history: %w", err)
	}
	return events, nil
}

func scanSession(row pgx.Row) (*entity.Session, error) {
	var (
		session   entity.Session
		latitude  sql.NullString
		longitude sql.NullString
		choice    sql.NullString
		theme     sql.NullString
	)

	err := row.Scan(&session.ID, &latitude, &longitude, &choice, &theme, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	session.Coordinates = munch.Coordinate{Latitude: latitude.String, Longitude: longitude.String}
	session.Choice = choice.String
	session.Theme = theme.String
	return &session, nil
}

var _ SessionsRepository = (*PGXSessionsRepository)(nil)

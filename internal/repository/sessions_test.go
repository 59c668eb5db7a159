package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/munch-hunt/api/internal/munch"
)

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error {
	return r.scan(dest...)
}

type stubPool struct {
	execTags []pgconn.CommandTag
	execErr  error
	execSQL  []string
	execArgs [][]any
	queryRow func(sql string, args ...any) pgx.Row
	query    func(sql string, args ...any) (pgx.Rows, error)
}

func (p *stubPool) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	p.execSQL = append(p.execSQL, sql)
	p.execArgs = append(p.execArgs, args)
	if p.execErr != nil {
		return pgconn.CommandTag{}, p.execErr
	}
	tag := pgconn.NewCommandTag("UPDATE 1")
	if len(p.execTags) > 0 {
		tag = p.execTags[0]
		p.execTags = p.execTags[1:]
	}
	return tag, nil
}

func (p *stubPool) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.query(sql, args...)
}

func (p *stubPool) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	return p.queryRow(sql, args...)
}

func TestGetSession(t *testing.T) {
	sessionID := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

	t.Run("found", func(t *testing.T) {
		pool := &stubPool{
			queryRow: func(sql string, args ...any) pgx.Row {
				if !strings.Contains(sql, "FROM sessions") {
					t.Fatalf("unexpected query %q", sql)
				}
				return stubRow{scan: func(dest ...any) error {
					*(dest[0].(*uuid.UUID)) = sessionID
					// latitude/longitude/choice/theme stay NULL
					*(dest[5].(*time.Time)) = time.Now()
					*(dest[6].(*time.Time)) = time.Now()
					return nil
				}}
			},
		}
		repo := &PGXSessionsRepository{pool: pool}

		session, err := repo.Get(context.Background(), sessionID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if session.ID != sessionID {
			t.Fatalf("unexpected session id %s", session.ID)
		}
		if session.Coordinates.IsSet() || session.Choice != "" || session.Theme != "" {
			t.Fatalf("fresh session should be empty: %+v", session)
		}
	})

	t.Run("not found", func(t *testing.T) {
		pool := &stubPool{
			queryRow: func(sql string, args ...any) pgx.Row {
				return stubRow{scan: func(...any) error { return pgx.ErrNoRows }}
			},
		}
		repo := &PGXSessionsRepository{pool: pool}

		if _, err := repo.Get(context.Background(), sessionID); !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestSaveLocation(t *testing.T) {
	sessionID := uuid.New()

	t.Run("updates row", func(t *testing.T) {
		pool := &stubPool{}
		repo := &PGXSessionsRepository{pool: pool}

		err := repo.SaveLocation(context.Background(), sessionID, coord("37.76", "-122.41"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(pool.execSQL) != 1 || !strings.Contains(pool.execSQL[0], "SET latitude") {
			t.Fatalf("unexpected exec calls %v", pool.execSQL)
		}
	})

	t.Run("missing session", func(t *testing.T) {
		pool := &stubPool{execTags: []pgconn.CommandTag{pgconn.NewCommandTag("UPDATE 0")}}
		repo := &PGXSessionsRepository{pool: pool}

		err := repo.SaveLocation(context.Background(), sessionID, coord("1", "2"))
		if !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestClearLocationAlsoClearsChoice(t *testing.T) {
	pool := &stubPool{}
	repo := &PGXSessionsRepository{pool: pool}

	if err := repo.ClearLocation(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pool.execSQL) != 1 {
		t.Fatalf("expected one exec, got %d", len(pool.execSQL))
	}
	sql := pool.execSQL[0]
	if !strings.Contains(sql, "latitude = NULL") || !strings.Contains(sql, "choice = NULL") {
		t.Fatalf("clearing location must also clear the choice: %q", sql)
	}
}

func TestSaveChoiceAppendsHistory(t *testing.T) {
	pool := &stubPool{}
	repo := &PGXSessionsRepository{pool: pool}

	if err := repo.SaveChoice(context.Background(), uuid.New(), "Thai"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pool.execSQL) != 2 {
		t.Fatalf("expected choice update plus history insert, got %d execs", len(pool.execSQL))
	}
	if !strings.Contains(pool.execSQL[0], "SET choice") {
		t.Fatalf("first exec should update the choice: %q", pool.execSQL[0])
	}
	if !strings.Contains(pool.execSQL[1], "INSERT INTO hunt_history") {
		t.Fatalf("second exec should append history: %q", pool.execSQL[1])
	}
}

func TestSaveTheme(t *testing.T) {
	pool := &stubPool{}
	repo := &PGXSessionsRepository{pool: pool}

	if err := repo.SaveTheme(context.Background(), uuid.New(), "dark"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pool.execArgs) != 1 || pool.execArgs[0][1] != "dark" {
		t.Fatalf("unexpected exec args %v", pool.execArgs)
	}
}

func coord(lat, lng string) munch.Coordinate {
	return munch.Coordinate{Latitude: lat, Longitude: lng}
}

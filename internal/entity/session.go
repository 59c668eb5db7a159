package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/munch-hunt/api/internal/munch"
)

// Session is the durable per-user state: the chosen location, the resolved
// cuisine and the theme. Each field has a single writer and is overwritten
// independently.
type Session struct {
	ID          uuid.UUID        `json:"id"`
	Coordinates munch.Coordinate `json:"coordinates"`
	Choice      string           `json:"choice,omitempty"`
	Theme       string           `json:"theme,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// HuntEvent is one resolved hunt, kept as history.
type HuntEvent struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Cuisine   string    `json:"cuisine"`
	CreatedAt time.Time `json:"created_at"`
}

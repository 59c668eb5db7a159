package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/munch-hunt/api/internal/auth"
	"github.com/munch-hunt/api/internal/dto"
	"github.com/munch-hunt/api/internal/maps"
	"github.com/munch-hunt/api/internal/middleware"
	"github.com/munch-hunt/api/internal/munch"
	"github.com/munch-hunt/api/internal/repository"
	"github.com/munch-hunt/api/internal/service"
)

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (maps.GeocodeResult, error)
}

// SessionHandler manages the durable per-user state: creation, location,
// theme and hunt history.
type SessionHandler struct {
	sessions *service.SessionsService
	tokens   *auth.TokenManager
	geocoder Geocoder
}

// NewSessionHandler creates a new instance of SessionHandler.
func NewSessionHandler(sessions *service.SessionsService, tokens *auth.TokenManager, geocoder Geocoder) *SessionHandler {
	return &SessionHandler{sessions: sessions, tokens: tokens, geocoder: geocoder}
}

// Create handles POST /session: a fresh anonymous session plus the bearer
// token that identifies it.
func (h *SessionHandler) Create(c echo.Context) error {
	session, err := h.sessions.Create(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "could not create session")
	}

	token, err := h.tokens.GenerateToken(session.ID.String())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "could not issue session token")
	}

	return Success(c, http.StatusCreated, "session created", map[string]any{
		"session_id": session.ID,
		"token":      token,
	})
}

// Get handles GET /session.
func (h *SessionHandler) Get(c echo.Context) error {
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "missing session")
	}

	session, err := h.sessions.Get(c.Request().Context(), sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return Error(c, http.StatusNotFound, "session not found")
		}
		return Error(c, http.StatusInternalServerError, "could not load session")
	}
	return Success(c, http.StatusOK, "session state", session)
}

// SaveLocation handles PUT /session/location.
func (h *SessionHandler) SaveLocation(c echo.Context) error {
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "missing session")
	}

	var req dto.LocationRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	coords := munch.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude}
	var displayAddress string
	if !coords.IsSet() && req.Address != "" && h.geocoder != nil {
		result, err := h.geocoder.Geocode(c.Request().Context(), req.Address)
		switch {
		case errors.Is(err, maps.ErrNoResults):
			return Error(c, http.StatusNotFound, "address not found")
		case err != nil:
			return Error(c, http.StatusBadGateway, "could not geocode address")
		}
		coords = result.Coordinate
		displayAddress = munch.TrimStateAndCountry(result.FormattedAddress)
	}

	err := h.sessions.SaveLocation(c.Request().Context(), sessionID, coords)
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		return Error(c, http.StatusNotFound, "session not found")
	case errors.Is(err, munch.ErrPartialCoordinate):
		return Error(c, http.StatusBadRequest, err.Error())
	case err != nil:
		return Error(c, http.StatusBadRequest, err.Error())
	}

	data := map[string]any{"coordinates": coords}
	if displayAddress != "" {
		data["address"] = displayAddress
	}
	return Success(c, http.StatusOK, "location saved", data)
}

// ResetLocation handles DELETE /session/location. Clearing the location also
// clears the resolved choice.
func (h *SessionHandler) ResetLocation(c echo.Context) error {
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "missing session")
	}

	if err := h.sessions.ResetLocation(c.Request().Context(), sessionID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return Error(c, http.StatusNotFound, "session not found")
		}
		return Error(c, http.StatusInternalServerError, "could not reset location")
	}
	return Success(c, http.StatusOK, "location cleared", nil)
}

// SaveTheme handles PUT /session/theme.
func (h *SessionHandler) SaveTheme(c echo.Context) error {
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "missing session")
	}

	var req dto.ThemeRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	err := h.sessions.SaveTheme(c.Request().Context(), sessionID, req.Theme)
	switch {
	case errors.Is(err, service.ErrInvalidTheme):
		return Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrSessionNotFound):
		return Error(c, http.StatusNotFound, "session not found")
	case err != nil:
		return Error(c, http.StatusInternalServerError, "could not save theme")
	}
	return Success(c, http.StatusOK, "theme saved", map[string]string{"theme": req.Theme})
}

// History handles GET /hunt/history.
func (h *SessionHandler) History(c echo.Context) error {
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "missing session")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	events, err := h.sessions.History(c.Request().Context(), sessionID, limit)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "could not load hunt history")
	}
	return Success(c, http.StatusOK, "hunt history", events)
}

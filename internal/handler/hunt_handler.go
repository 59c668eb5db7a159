package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/munch-hunt/api/internal/dto"
	"github.com/munch-hunt/api/internal/hunt"
	"github.com/munch-hunt/api/internal/middleware"
	"github.com/munch-hunt/api/internal/munch"
	"github.com/munch-hunt/api/internal/service"
)

// HuntHandler drives the cuisine selection flow: selection state, toggling
// and the final randomized resolution.
type HuntHandler struct {
	hunts          *service.HuntService
	categories     *service.CategoriesService
	sessions       *service.SessionsService
	revealInterval time.Duration
}

// NewHuntHandler creates a new instance of HuntHandler.
func NewHuntHandler(hunts *service.HuntService, categories *service.CategoriesService, sessions *service.SessionsService, revealInterval time.Duration) *HuntHandler {
	if revealInterval <= 0 {
		revealInterval = hunt.DefaultRevealInterval
	}
	return &HuntHandler{hunts: hunts, categories: categories, sessions: sessions, revealInterval: revealInterval}
}

// StartSelection handles POST /hunt/selection.
func (h *HuntHandler) StartSelection(c echo.Context) error {
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "missing session")
	}

	state := h.hunts.StartSelection(sessionID)
	return Success(c, http.StatusCreated, "selection started", state)
}

// GetSelection handles GET /hunt/selection.
func (h *HuntHandler) GetSelection(c echo.Context) error {
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "missing session")
	}

	state, err := h.hunts.Selection(sessionID)
	if err != nil {
		return Error(c, http.StatusNotFound, "no active selection")
	}
	return Success(c, http.StatusOK, "selection state", state)
}

// Toggle handles POST /hunt/toggle.
func (h *HuntHandler) Toggle(c echo.Context) error {
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "missing session")
	}

	var req dto.ToggleRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if req.Category == "" {
		return Error(c, http.StatusBadRequest, "category is required")
	}

	state, err := h.hunts.Toggle(sessionID, req.Category)
	if err != nil {
		return Error(c, http.StatusNotFound, "no active selection")
	}
	return Success(c, http.StatusOK, "selection updated", state)
}

// ClearExcluded handles DELETE /hunt/excluded.
func (h *HuntHandler) ClearExcluded(c echo.Context) error {
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "missing session")
	}

	state, err := h.hunts.ClearExcluded(sessionID)
	if err != nil {
		return Error(c, http.StatusNotFound, "no active selection")
	}
	return Success(c, http.StatusOK, "excluded cleared", state)
}

// Resolve handles POST /hunt/resolve. With ?stream=true the shortlist is
// revealed incrementally as newline-delimited JSON before the final choice.
func (h *HuntHandler) Resolve(c echo.Context) error {
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "missing session")
	}

	var req dto.ResolveRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	ctx := c.Request().Context()

	available := req.Categories
	if len(available) == 0 {
		available = h.categories.Nearby(ctx, h.sessionCoordinates(c))
	}

	result, err := h.hunts.Resolve(ctx, sessionID, available)
	switch {
	case errors.Is(err, hunt.ErrNoSelection):
		return Error(c, http.StatusNotFound, "no active selection")
	case errors.Is(err, hunt.ErrResolveInProgress):
		return Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, hunt.ErrEmptyCategoryPool):
		return Error(c, http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		return Error(c, http.StatusInternalServerError, "could not resolve hunt")
	}

	if c.QueryParam("stream") == "true" {
		return h.streamResult(c, result)
	}
	return Success(c, http.StatusOK, "hunt resolved", result)
}

// streamResult paces the shortlist reveal over the open response, one JSON
// line per step, then closes with the choice. A client disconnect cancels
// the remaining steps.
func (h *HuntHandler) streamResult(c echo.Context, result hunt.Result) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "application/x-ndjson")
	res.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(res)
	err := hunt.Reveal(c.Request().Context(), result.Shortlist, h.revealInterval, func(item string) error {
		if err := enc.Encode(map[string]string{"reveal": item}); err != nil {
			return err
		}
		res.Flush()
		return nil
	})
	if err != nil {
		// The choice is already recorded; an abandoned reveal needs no
		// further handling.
		return nil
	}

	if err := enc.Encode(map[string]string{"choice": result.Choice}); err != nil {
		return nil
	}
	res.Flush()
	return nil
}

func (h *HuntHandler) sessionCoordinates(c echo.Context) munch.Coordinate {
	if h.sessions == nil {
		return munch.Coordinate{}
	}
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return munch.Coordinate{}
	}
	session, err := h.sessions.Get(c.Request().Context(), sessionID)
	if err != nil {
		return munch.Coordinate{}
	}
	return session.Coordinates
}

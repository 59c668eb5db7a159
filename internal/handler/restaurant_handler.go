package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/munch-hunt/api/internal/filter"
	"github.com/munch-hunt/api/internal/middleware"
	"github.com/munch-hunt/api/internal/munch"
	"github.com/munch-hunt/api/internal/service"
)

// RestaurantHandler serves the filtered result list and the per-business
// detail view.
type RestaurantHandler struct {
	restaurants *service.RestaurantsService
	sessions    *service.SessionsService
}

// NewRestaurantHandler creates a new instance of RestaurantHandler.
func NewRestaurantHandler(restaurants *service.RestaurantsService, sessions *service.SessionsService) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants, sessions: sessions}
}

// Search handles GET /restaurants. The food term and coordinates default to
// the session's stored choice and location so the results screen works
// straight after a hunt.
func (h *RestaurantHandler) Search(c echo.Context) error {
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "missing session")
	}

	food := c.QueryParam("food")
	coords := munch.Coordinate{
		Latitude:  c.QueryParam("latitude"),
		Longitude: c.QueryParam("longitude"),
	}

	if food == "" || !coords.IsSet() {
		session, err := h.sessions.Get(c.Request().Context(), sessionID)
		if err == nil {
			if food == "" {
				food = session.Choice
			}
			if !coords.IsSet() {
				coords = session.Coordinates
			}
		}
	}

	if food == "" {
		return Error(c, http.StatusBadRequest, "food term is required")
	}
	if !coords.IsSet() {
		return Error(c, http.StatusBadRequest, "coordinates are required")
	}

	state, err := parseFilterState(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	restaurants, err := h.restaurants.Search(c.Request().Context(), food, coords, state)
	if err != nil {
		return Error(c, http.StatusBadGateway, "restaurant search failed")
	}
	return Success(c, http.StatusOK, "restaurants", restaurants)
}

// Business handles GET /business/:id.
func (h *RestaurantHandler) Business(c echo.Context) error {
	if _, ok := middleware.SessionIDFromContext(c); !ok {
		return Error(c, http.StatusUnauthorized, "missing session")
	}

	detail, err := h.restaurants.Business(c.Request().Context(), c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadGateway, "business lookup failed")
	}
	return Success(c, http.StatusOK, "business detail", detail)
}

// parseFilterState reads the optional filter dimensions off the query
// string. An absent parameter leaves its dimension unconstrained.
func parseFilterState(c echo.Context) (filter.State, error) {
	var state filter.State

	if price := c.QueryParam("price"); price != "" {
		state.Price = &price
	}

	if raw := c.QueryParam("distance"); raw != "" {
		miles, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter.State{}, errors.New("distance must be a number")
		}
		state.DistanceMiles = &miles
	}

	if raw := c.QueryParam("rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			return filter.State{}, errors.New("rating must be an integer")
		}
		state.Rating = &rating
	}

	if raw := c.QueryParam("open"); raw != "" {
		open := raw == filter.OpenValue || raw == "true"
		state.Open = &open
	}

	return state, nil
}

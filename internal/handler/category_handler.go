package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/munch-hunt/api/internal/munch"
	"github.com/munch-hunt/api/internal/service"
)

// CategoryHandler serves the derived cuisine list for the selection screen.
type CategoryHandler struct {
	categories *service.CategoriesService
}

// NewCategoryHandler creates a new instance of CategoryHandler.
func NewCategoryHandler(categories *service.CategoriesService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List handles GET /categories. Coordinates are optional; without them the
// static cuisine list is returned.
func (h *CategoryHandler) List(c echo.Context) error {
	coords := munch.Coordinate{
		Latitude:  c.QueryParam("latitude"),
		Longitude: c.QueryParam("longitude"),
	}
	if err := coords.Validate(); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	cuisines := h.categories.Nearby(c.Request().Context(), coords)
	return Success(c, http.StatusOK, "available cuisines", cuisines)
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/munch-hunt/api/internal/dto"
	"github.com/munch-hunt/api/internal/maps"
	"github.com/munch-hunt/api/internal/yelp"
)

// GeoProxy is the raw pass-through surface of the geocoding gateway.
type GeoProxy interface {
	RawGeocode(ctx context.Context, params url.Values) ([]byte, error)
	RawAutocomplete(ctx context.Context, input string) ([]byte, error)
}

// DirectoryProxy is the raw pass-through surface of the business directory
// gateway.
type DirectoryProxy interface {
	RawSearch(ctx context.Context, food, latitude, longitude string) ([]byte, error)
	RawNearbyCategories(ctx context.Context, latitude, longitude string) ([]byte, error)
	RawBusiness(ctx context.Context, businessID string) ([]byte, error)
}

// ProxyHandler forwards provider queries verbatim: the upstream body is
// returned untouched, failures surface as the provider status (or 500) with
// a plain {error} object rather than the usual envelope.
type ProxyHandler struct {
	geo       GeoProxy
	directory DirectoryProxy
}

// NewProxyHandler creates a new instance of ProxyHandler.
func NewProxyHandler(geo GeoProxy, directory DirectoryProxy) *ProxyHandler {
	return &ProxyHandler{geo: geo, directory: directory}
}

// GetAddress handles GET /functions/getAddress: reverse geocode.
func (h *ProxyHandler) GetAddress(c echo.Context) error {
	params := url.Values{}
	params.Set("latlng", c.QueryParam("latitude")+","+c.QueryParam("longitude"))

	body, err := h.geo.RawGeocode(c.Request().Context(), params)
	if err != nil {
		return proxyError(c, err)
	}
	return c.JSONBlob(http.StatusOK, body)
}

// GetCoordinates handles GET /functions/getCoordinates: forward geocode. An
// empty address is rejected before any upstream call.
func (h *ProxyHandler) GetCoordinates(c echo.Context) error {
	address := c.QueryParam("address")
	if address == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "address is required"})
	}

	params := url.Values{}
	params.Set("address", address)

	body, err := h.geo.RawGeocode(c.Request().Context(), params)
	if err != nil {
		return proxyError(c, err)
	}
	return c.JSONBlob(http.StatusOK, body)
}

// GetAutocomplete handles POST /functions/getAutocomplete.
func (h *ProxyHandler) GetAutocomplete(c echo.Context) error {
	var req dto.AutocompleteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	body, err := h.geo.RawAutocomplete(c.Request().Context(), req.Input)
	if err != nil {
		return proxyError(c, err)
	}
	return c.JSONBlob(http.StatusOK, body)
}

// GetCategories handles GET /functions/getCategories: the nearby restaurant
// category probe.
func (h *ProxyHandler) GetCategories(c echo.Context) error {
	body, err := h.directory.RawNearbyCategories(c.Request().Context(), c.QueryParam("latitude"), c.QueryParam("longitude"))
	if err != nil {
		return proxyError(c, err)
	}
	return c.JSONBlob(http.StatusOK, body)
}

// GetRestaurants handles GET /functions/getRestaurants.
func (h *ProxyHandler) GetRestaurants(c echo.Context) error {
	body, err := h.directory.RawSearch(c.Request().Context(), c.QueryParam("food"), c.QueryParam("latitude"), c.QueryParam("longitude"))
	if err != nil {
		return proxyError(c, err)
	}
	return c.JSONBlob(http.StatusOK, body)
}

// GetBusiness handles GET /functions/getBusiness.
func (h *ProxyHandler) GetBusiness(c echo.Context) error {
	body, err := h.directory.RawBusiness(c.Request().Context(), c.QueryParam("businessID"))
	if err != nil {
		return proxyError(c, err)
	}
	return c.JSONBlob(http.StatusOK, body)
}

// proxyError maps a gateway failure onto the pass-through contract: the
// provider's status when known, 500 otherwise, always a bare {error} object.
func proxyError(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	var mapsErr *maps.UpstreamError
	var yelpErr *yelp.UpstreamError
	switch {
	case errors.As(err, &mapsErr):
		status = mapsErr.Status
	case errors.As(err, &yelpErr):
		status = yelpErr.Status
	}

	return c.JSON(status, map[string]string{"error": err.Error()})
}

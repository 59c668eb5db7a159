package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/munch-hunt/api/internal/auth"
	"github.com/munch-hunt/api/internal/config"
	"github.com/munch-hunt/api/internal/handler"
	middlewarepkg "github.com/munch-hunt/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Session     *handler.SessionHandler
	Hunt        *handler.HuntHandler
	Proxy       *handler.ProxyHandler
	Categories  *handler.CategoryHandler
	Restaurants *handler.RestaurantHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, tokens *auth.TokenManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/session", handlers.Session.Create)
	e.GET("/categories", handlers.Categories.List)

	// Provider pass-through endpoints share one rate limit bucket since they
	// all burn upstream quota.
	functions := e.Group("/functions", middlewarepkg.ProxyRateLimiter(cfg.RateLimitProxy))
	functions.GET("/getAddress", handlers.Proxy.GetAddress)
	functions.GET("/getCoordinates", handlers.Proxy.GetCoordinates)
	functions.POST("/getAutocomplete", handlers.Proxy.GetAutocomplete)
	functions.GET("/getCategories", handlers.Proxy.GetCategories)
	functions.GET("/getRestaurants", handlers.Proxy.GetRestaurants)
	functions.GET("/getBusiness", handlers.Proxy.GetBusiness)

	secured := e.Group("")
	secured.Use(middlewarepkg.Session(tokens))

	secured.GET("/session", handlers.Session.Get)
	secured.PUT("/session/location", handlers.Session.SaveLocation)
	secured.DELETE("/session/location", handlers.Session.ResetLocation)
	secured.PUT("/session/theme", handlers.Session.SaveTheme)

	secured.POST("/hunt/selection", handlers.Hunt.StartSelection)
	secured.GET("/hunt/selection", handlers.Hunt.GetSelection)
	secured.POST("/hunt/toggle", handlers.Hunt.Toggle)
	secured.DELETE("/hunt/excluded", handlers.Hunt.ClearExcluded)
	secured.POST("/hunt/resolve", handlers.Hunt.Resolve)
	secured.GET("/hunt/history", handlers.Session.History)

	secured.GET("/restaurants", handlers.Restaurants.Search)
	secured.GET("/business/:id", handlers.Restaurants.Business)
}

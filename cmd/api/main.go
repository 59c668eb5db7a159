package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/munch-hunt/api/internal/auth"
	"github.com/munch-hunt/api/internal/cache"
	"github.com/munch-hunt/api/internal/config"
	"github.com/munch-hunt/api/internal/database"
	"github.com/munch-hunt/api/internal/handler"
	"github.com/munch-hunt/api/internal/hunt"
	"github.com/munch-hunt/api/internal/maps"
	middlewarepkg "github.com/munch-hunt/api/internal/middleware"
	"github.com/munch-hunt/api/internal/repository"
	"github.com/munch-hunt/api/internal/router"
	"github.com/munch-hunt/api/internal/service"
	"github.com/munch-hunt/api/internal/yelp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	var store cache.Store
	if cfg.RedisAddr != "" {
		redisStore := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer redisStore.Close()
		store = redisStore
	}
	loader := cache.NewLoader(store, cfg.CacheTTL)

	httpClient := &http.Client{Timeout: 15 * time.Second}
	mapsClient := maps.NewClient(httpClient, cfg.MapsAPIKey, loader)
	yelpClient := yelp.NewClient(httpClient, cfg.YelpAPIKey, loader)

	tokenManager := auth.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL)
	sessionsRepo := repository.NewPGXSessionsRepository(pool)

	sessionsService := service.NewSessionsService(sessionsRepo)
	categoriesService := service.NewCategoriesService(yelpClient)
	restaurantsService := service.NewRestaurantsService(yelpClient)
	huntService := service.NewHuntService(hunt.NewStore(), hunt.NewSelector(), sessionsRepo)

	handlers := router.Handlers{
		Session:     handler.NewSessionHandler(sessionsService, tokenManager, mapsClient),
		Hunt:        handler.NewHuntHandler(huntService, categoriesService, sessionsService, cfg.RevealInterval),
		Proxy:       handler.NewProxyHandler(mapsClient, yelpClient),
		Categories:  handler.NewCategoryHandler(categoriesService),
		Restaurants: handler.NewRestaurantHandler(restaurantsService, sessionsService),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, tokenManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-feed-service/internal/api/http"
	"github.com/i474232898/weather-feed-service/internal/config"
	"github.com/i474232898/weather-feed-service/internal/feed"
	"github.com/i474232898/weather-feed-service/internal/geo"
	"github.com/i474232898/weather-feed-service/internal/location"
	"github.com/i474232898/weather-feed-service/internal/pipeline"
	"github.com/i474232898/weather-feed-service/internal/scheduler"
	"github.com/i474232898/weather-feed-service/internal/store"
	"github.com/i474232898/weather-feed-service/internal/weather"
)

func main() {
	// Load configuration (godotenv is applied inside Load).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	weather.SetDebug(cfg.Debug)

	// Shared HTTP client for outbound calls, with the two fetch budgets.
	httpClient := feed.NewHTTPClient(cfg.ConnectTimeout, cfg.SocketTimeout)

	resolver := geo.NewResolver(httpClient, cfg.GeoBaseURL, cfg.GeoAppID)
	fetcher := feed.NewFetcher(httpClient, cfg.FeedBaseURL, cfg.SocketTimeout)
	reach := pipeline.NewHostReachability(cfg.FeedBaseURL, cfg.ConnectTimeout)

	var images feed.ImageFetcher
	if cfg.DownloadIcons {
		images = feed.NewHTTPImageFetcher(httpClient)
	}

	var locations location.Provider
	if cfg.HasGPS {
		locations = location.NewStatic(cfg.GPSLat, cfg.GPSLon)
	}

	pipe := pipeline.New(resolver, fetcher, images, reach, locations, pipeline.Options{
		Unit:          cfg.Unit,
		DownloadIcons: cfg.DownloadIcons,
	})

	// In-memory store with configured retention, fed by the scheduler.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	sched := scheduler.New(cfg.Places, cfg.RefreshInterval, pipe, memStore)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-feed-service",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          90 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-feed-service",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, pipe, memStore)

	// Start server with graceful shutdown
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

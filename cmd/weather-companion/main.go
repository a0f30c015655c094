package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "weather-companion/internal/api/http"
	"weather-companion/internal/app"
	"weather-companion/internal/config"
	"weather-companion/internal/geocode"
	"weather-companion/internal/provider"
	"weather-companion/internal/scheduler"
	"weather-companion/internal/store"
	"weather-companion/internal/summary"
)

func main() {
	// Load configuration (reads .env when present).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider and summarizer calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Durable request store.
	db, err := store.NewDatabase(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	geo := geocode.NewGoogleGeocoder(cfg.GeocoderAPIKey)
	weatherProvider := provider.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey)

	// Narrative summarizer is optional; without a token the composer falls
	// back to rule-based summaries.
	loader := summary.NewLoader(func() (summary.Summarizer, error) {
		return summary.NewHuggingFaceSummarizer(httpClient, cfg.SummarizerAPIToken)
	})
	composer := summary.NewComposer(loader)

	// Core service orchestrating geocoding, fetching, and persistence.
	service := app.NewService(db, geo, weatherProvider, composer, cfg.Units)

	// Scheduler that periodically refreshes stored requests.
	sched := scheduler.New(service, cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	webApp := fiber.New(fiber.Config{
		AppName:               "weather-companion",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
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
	webApp.Use(logger.New())
	webApp.Use(recover.New())

	// Basic health endpoint
	webApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-companion",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(webApp, service)

	// Start server with graceful shutdown
	go func() {
		if err := webApp.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := webApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"moviehub-catalog-service/internal/catalog"
	"moviehub-catalog-service/internal/config"
	"moviehub-catalog-service/internal/handler"
	"moviehub-catalog-service/internal/middleware"
	"moviehub-catalog-service/internal/omdb"
	"moviehub-catalog-service/internal/ratings"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	credentialSet := cfg.OMDB.APIKey != ""
	if !credentialSet {
		slog.Warn("OMDB_API_KEY is not set, catalog will report credential missing")
	}

	// Initialize OMDb client and the browsing session over it
	client := omdb.NewClient(cfg.OMDB.APIKey, cfg.OMDB.BaseURL)
	session := catalog.NewSession(client, credentialSet)
	store := ratings.NewStore()
	h := handler.NewCatalogHandler(session, store)

	// Connect to Redis for rate limiting (non-fatal if unavailable)
	rdb, err := middleware.NewRedisClient(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without rate limiting", "error", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Catalog Service",
		ServerHeader: "Catalog-Service",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	if rdb != nil {
		rateLimiter := middleware.NewRateLimiter(rdb, cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSeconds)
		app.Use(rateLimiter.Handler())
	}

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	// API routes
	api := app.Group("/api/v1")
	api.Get("/health", h.Health)
	api.Get("/catalog", h.GetCatalog)
	api.Put("/catalog/search", h.Search)
	api.Post("/catalog/more", h.LoadMore)
	api.Put("/catalog/filters", h.SetFilters)
	api.Get("/catalog/movies/:id", h.GetMovie)
	api.Put("/catalog/movies/:id/rating", h.RateMovie)

	// Warm the catalog with the default search so the first view has movies
	go session.SetSearchTerm("")

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down catalog service...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting catalog service", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

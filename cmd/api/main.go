// Package main is the entrypoint for the JobPal API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jobpal/jobpal/internal/auth"
	"github.com/jobpal/jobpal/internal/cache"
	"github.com/jobpal/jobpal/internal/config"
	"github.com/jobpal/jobpal/internal/handler"
	"github.com/jobpal/jobpal/internal/metrics"
	"github.com/jobpal/jobpal/internal/middleware"
	"github.com/jobpal/jobpal/internal/repository"
	"github.com/jobpal/jobpal/internal/server"
	"github.com/jobpal/jobpal/internal/service"
	"github.com/jobpal/jobpal/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		logger.Error("failed to initialize upload directory", "error", err, "dir", cfg.UploadDir)
		os.Exit(1)
	}

	tokens := auth.NewTokenIssuer(cfg.SecretKey, cfg.TokenExpiry)
	recorder := metrics.NewInMemory()

	authService := service.NewAuthService(repo, tokens, recorder)
	jobService := service.NewJobService(repo, recorder)
	fileService := service.NewFileService(repo, store, recorder)

	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	metricsHandler := handler.NewMetricsHandler(recorder)
	authHandler := handler.NewAuthHandler(authService, logger)
	jobHandler := handler.NewJobHandler(jobService, logger)
	fileHandler := handler.NewFileHandler(fileService, logger, cfg.MaxUploadSize)

	r := setupRouter(h, healthHandler, metricsHandler, authHandler, jobHandler, fileHandler,
		repo, cacheClient, tokens, cfg, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"upload_dir", cfg.UploadDir,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	metricsHandler *handler.MetricsHandler,
	authHandler *handler.AuthHandler,
	jobHandler *handler.JobHandler,
	fileHandler *handler.FileHandler,
	repo *repository.Repository,
	cacheClient *cache.Cache,
	tokens *auth.TokenIssuer,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	// Probes and metrics (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	authCfg := middleware.AuthConfig{
		Logger:     logger,
		Tokens:     tokens,
		Repository: repo,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:    logger,
		Cache:     cacheClient,
		AuthLimit: cfg.RateLimitAuthPerMinute,
		APILimit:  cfg.RateLimitAPIPerMinute,
	}

	// Upload routes set their own larger cap, so the JSON body limit is
	// applied per-route rather than group-wide.
	jsonBody := middleware.MaxBodySize(cfg.MaxRequestBodySize)

	r.Route("/api", func(r chi.Router) {
		// Credential endpoints: unauthenticated, per-IP limited
		r.Group(func(r chi.Router) {
			r.Use(jsonBody)
			if cfg.RateLimitAuthEnabled {
				r.Use(middleware.AuthRateLimit(rateLimitCfg))
			}
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		})

		// Everything below requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))
			if cfg.RateLimitAPIEnabled {
				r.Use(middleware.APIRateLimit(rateLimitCfg))
			}

			r.With(jsonBody).Post("/auth/refresh", authHandler.Refresh)
			r.Route("/auth/me", func(r chi.Router) {
				r.Use(jsonBody)
				r.Get("/", authHandler.Me)
				r.Put("/", authHandler.UpdateMe)
				r.Delete("/", authHandler.DeleteMe)
			})

			r.Route("/jobs", func(r chi.Router) {
				r.With(jsonBody).Get("/", jobHandler.List)
				r.With(jsonBody).Post("/", jobHandler.Create)
				r.With(jsonBody).Get("/{id}", jobHandler.Get)
				r.With(jsonBody).Put("/{id}", jobHandler.Update)
				r.With(jsonBody).Patch("/{id}", jobHandler.Update)
				r.With(jsonBody).Delete("/{id}", jobHandler.Delete)
				r.Get("/{id}/files", fileHandler.List)
				r.Post("/{id}/files", fileHandler.Upload)
			})
		})
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/apartment_fee_app/internal/core/services"
	"github.com/SscSPs/apartment_fee_app/internal/handlers"
	"github.com/SscSPs/apartment_fee_app/internal/middleware"
	"github.com/SscSPs/apartment_fee_app/internal/platform/config"
	"github.com/SscSPs/apartment_fee_app/internal/platform/mail"
	"github.com/SscSPs/apartment_fee_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/apartment_fee_app/internal/utils"
	"github.com/SscSPs/apartment_fee_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Apartment Fee App API
// @version 1.0
// @description Fee management backend for an apartment building.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Apikey" followed by a space and the gateway key.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Database migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	mailer := mail.NewMailService(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, logger)

	repos := pgsql.NewRepositoryProvider(dbPool, cfg.SettlementMaxRetries)
	serviceContainer := services.NewServiceContainer(cfg, repos, mailer, posthogClient)

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		logger.Error("Invalid LOGIN_RATE_LIMIT", slog.String("error", err.Error()))
		os.Exit(1)
	}
	webhookLimiter, err := middleware.NewMemoryLimiter(cfg.WebhookRateLimit)
	if err != nil {
		logger.Error("Invalid WEBHOOK_RATE_LIMIT", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS for the desktop client)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	r.Use(middleware.PosthogMiddleware(posthogClient))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, loginLimiter, webhookLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// corsConfig allows the configured origins, or any origin without
// credentials when none are configured.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"X-Request-ID"},
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	// desktop shell origins use the tauri:// scheme
	c.CustomSchemas = []string{"tauri://"}
	c.AllowCredentials = true
	return c
}

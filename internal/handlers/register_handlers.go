package handlers

import (
	"github.com/SscSPs/apartment_fee_app/cmd/docs"
	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	portssvc "github.com/SscSPs/apartment_fee_app/internal/core/ports/services"
	"github.com/SscSPs/apartment_fee_app/internal/middleware"
	"github.com/SscSPs/apartment_fee_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	loginLimiter *limiter.Limiter,
	webhookLimiter *limiter.Limiter,
) {
	RegisterValidators()

	r.GET("/", getHome)
	r.GET("/health", getHealth)

	// Public routes: registration, login, token refresh and password recovery
	registerAuthRoutes(r.Group(""), cfg.JWTSecret, loginLimiter, services)

	// Gateway callback authenticates with its own API key
	registerWebhookRoutes(r, cfg.PaymentAPIKey, cfg.JWTSecret, webhookLimiter, services)

	setupBearerRoutes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupBearerRoutes configures the routes behind AuthMiddleware and
// delegates to role-specific registrations.
func setupBearerRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	bearer := r.Group("", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(bearer, services)
	registerHouseholdRoutes(bearer, services, cfg.PaymentCodePrefix)

	manager := bearer.Group("", middleware.RequireRole(domain.RoleManager, domain.RoleAdmin))
	registerManagerRoutes(manager, services)

	admin := bearer.Group("", middleware.RequireRole(domain.RoleAdmin))
	registerAdminRoutes(admin, services)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

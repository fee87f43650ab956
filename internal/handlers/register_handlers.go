package handlers

import (
	"fmt"

	"github.com/bazaarhq/storefront_backoffice/cmd/docs"
	portssvc "github.com/bazaarhq/storefront_backoffice/internal/core/ports/services"
	"github.com/bazaarhq/storefront_backoffice/internal/middleware"
	"github.com/bazaarhq/storefront_backoffice/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes. Rate limit counters live in
// Redis when rdb is non-nil so every instance shares them.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rdb *redis.Client,
) error {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	loginLimiter, err := middleware.NewLimiter(cfg.LoginRateLimit, "limiter:login", rdb)
	if err != nil {
		return fmt.Errorf("login rate limit: %w", err)
	}
	publicLimiter, err := middleware.NewLimiter(cfg.PublicRateLimit, "limiter:public", rdb)
	if err != nil {
		return fmt.Errorf("public rate limit: %w", err)
	}

	public := r.Group("/api/v1")
	registerAuthRoutes(public, services.Auth, loginLimiter)
	registerPublicDeliveryRoutes(public, services.Delivery, middleware.RateLimit(publicLimiter))

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the authenticated back-office routes.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerAccountRoutes(v1, service.Account)
	registerJournalRoutes(v1, service.Journal)
	registerExpenseRoutes(v1, service.Expense)
	registerSettingsRoutes(v1, service.Settings)
	registerDeliveryAreaRoutes(v1, service.Delivery)
	registerReportingRoutes(v1, service.Reporting)
}

func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	"github.com/bakemate/recipe_invoice_app/cmd/docs"
	portssvc "github.com/bakemate/recipe_invoice_app/internal/core/ports/services"
	"github.com/bakemate/recipe_invoice_app/internal/middleware"
	"github.com/bakemate/recipe_invoice_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	exportLimiter *limiter.Limiter,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services, exportLimiter)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations. Every route is owner-scoped.
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	exportLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.OwnerMiddleware())

	registerInvoiceRoutes(v1, services.Invoice, exportLimiter)
	registerCurrencyRoutes(v1, services.Currency)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

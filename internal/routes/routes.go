package routes

import (
	"agrihub_backend/internal/auth"
	"agrihub_backend/internal/config"
	"agrihub_backend/internal/handlers"
	"agrihub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes mounts all HTTP routes of the application.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	tokenManager *auth.TokenManager,
	cfg *config.Config,
) {
	authMW := middleware.AuthMiddleware(tokenManager)
	rateLimitMW := middleware.RateLimitMiddleware(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, authMW, rateLimitMW)
		appHandlers.UserHandler.RegisterRoutes(api, authMW)
		appHandlers.ListingHandler.RegisterRoutes(api, authMW)
		appHandlers.BookingHandler.RegisterRoutes(api, authMW)
		appHandlers.ChatHandler.RegisterRoutes(api, authMW)
		appHandlers.PaymentHandler.RegisterRoutes(api, authMW)
		appHandlers.ReviewHandler.RegisterRoutes(api, authMW)
	}

	ginRouter.GET("/healthz", appHandlers.HealthHandler.Healthz)
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

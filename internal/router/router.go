package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipe-recommender/backend/config"
	"github.com/pageza/recipe-recommender/backend/internal/api"
	"github.com/pageza/recipe-recommender/backend/internal/middleware"
	"github.com/pageza/recipe-recommender/backend/internal/service"
)

// Dependencies are the services the routes are built on. Redis is optional.
type Dependencies struct {
	Recommendations service.IRecommendationService
	Catalog         service.ICatalogService
	Tokens          middleware.TokenValidator
	Redis           *redis.Client
}

// SetupRouter configures the application routes
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
		middleware.CORS(cfg.CORSOrigins),
	)

	// Health check endpoints (no auth required)
	health := api.NewHealthHandler(deps.Catalog)
	router.GET("/health", health.HealthCheck)
	router.GET("/api/health", health.HealthCheck)

	v1 := router.Group("/api/v1")

	limiter := middleware.NewRecommendationRateLimiter(deps.Redis, cfg.RateLimitPerMinute)
	api.NewRecommendationHandler(deps.Recommendations).RegisterRoutes(v1, limiter.RateLimitMiddleware())

	catalogHandler := api.NewCatalogHandler(deps.Catalog)
	catalogHandler.RegisterRoutes(v1)
	if deps.Tokens != nil {
		catalogHandler.RegisterAdminRoutes(v1, deps.Tokens)
	}

	return router
}

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-recommender/backend/internal/catalog"
	"github.com/pageza/recipe-recommender/backend/internal/middleware"
	"github.com/pageza/recipe-recommender/backend/internal/ranker"
	"github.com/pageza/recipe-recommender/backend/internal/service"
	"github.com/pageza/recipe-recommender/backend/internal/types"
)

// CatalogInfoProvider reports on the loaded catalog.
type CatalogInfoProvider interface {
	Info(ctx context.Context) (*types.CatalogInfo, error)
}

// HealthHandler serves the liveness endpoints.
type HealthHandler struct {
	catalog CatalogInfoProvider
}

func NewHealthHandler(catalog CatalogInfoProvider) *HealthHandler {
	return &HealthHandler{catalog: catalog}
}

// HealthCheck returns the health status of the API. It reports unavailable
// until the catalog has loaded.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	info, err := h.catalog.Info(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"message":         "Recipe recommender is running",
		"catalog_version": info.Version,
		"recipes":         info.Recipes,
	})
}

// respondError maps service errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrEmptyQuery),
		errors.Is(err, service.ErrTopNTooLarge),
		errors.Is(err, ranker.ErrInvalidTopN):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrRecipeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, catalog.ErrNotLoaded):
		status = http.StatusServiceUnavailable
	}

	_ = c.Error(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal Server Error"
	}
	c.AbortWithStatusJSON(status, types.ErrorResponse{
		Error:     message,
		RequestID: middleware.GetRequestID(c),
	})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, types.ErrorResponse{
		Error:     message,
		RequestID: middleware.GetRequestID(c),
	})
}

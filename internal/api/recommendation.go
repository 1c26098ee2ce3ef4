package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-recommender/backend/internal/service"
	"github.com/pageza/recipe-recommender/backend/internal/types"
)

type RecommendationHandler struct {
	recommendations service.IRecommendationService
}

func NewRecommendationHandler(recommendations service.IRecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

// RegisterRoutes mounts the recommendation endpoints. Extra handlers, such
// as a rate limiter, run before each endpoint.
func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup, extra ...gin.HandlerFunc) {
	recs := router.Group("/recommendations", extra...)
	{
		recs.POST("", h.Recommend)
		recs.GET("", h.RecommendQuery)
	}
}

// Recommend handles POST with a JSON body.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req types.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	h.respond(c, req)
}

// RecommendQuery handles GET with query parameters.
func (h *RecommendationHandler) RecommendQuery(c *gin.Context) {
	var req types.RecommendationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	h.respond(c, req)
}

func (h *RecommendationHandler) respond(c *gin.Context, req types.RecommendationRequest) {
	results, err := h.recommendations.Recommend(c.Request.Context(), req.Ingredients, req.TopN)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.RecommendationResponse{
		Query:   strings.TrimSpace(req.Ingredients),
		Results: results,
		Count:   len(results),
	})
}

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-recommender/backend/internal/logger"
	"github.com/pageza/recipe-recommender/backend/internal/middleware"
	"github.com/pageza/recipe-recommender/backend/internal/service"
	"github.com/pageza/recipe-recommender/backend/internal/types"
)

type CatalogHandler struct {
	catalog service.ICatalogService
}

func NewCatalogHandler(catalog service.ICatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:position", h.GetRecipe)
	}
	router.GET("/catalog", h.Info)
}

// RegisterAdminRoutes mounts catalog administration behind admin auth.
func (h *CatalogHandler) RegisterAdminRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	admin := router.Group("/admin", middleware.AuthMiddleware(validator), middleware.RequireAdmin())
	{
		admin.POST("/catalog/reload", h.Reload)
	}
}

func (h *CatalogHandler) ListRecipes(c *gin.Context) {
	var req types.ListRecipesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	if req.Limit == 0 {
		req.Limit = service.DefaultPageSize
	}

	recipes, total, err := h.catalog.List(c.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.ListRecipesResponse{
		Recipes: recipes,
		Total:   total,
		Offset:  req.Offset,
		Limit:   req.Limit,
	})
}

func (h *CatalogHandler) GetRecipe(c *gin.Context) {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil || position < 0 {
		badRequest(c, "position must be a non-negative integer")
		return
	}

	recipe, err := h.catalog.Get(c.Request.Context(), position)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *CatalogHandler) Info(c *gin.Context) {
	info, err := h.catalog.Info(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *CatalogHandler) Reload(c *gin.Context) {
	info, err := h.catalog.Reload(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	subject := ""
	if claims, ok := middleware.GetClaims(c); ok {
		subject = claims.Subject
	}
	logger.Infow("catalog reloaded via api", "by", subject, "version", info.Version, "recipes", info.Recipes)
	c.JSON(http.StatusOK, info)
}

package types

import (
	"time"

	"github.com/google/uuid"
)

// RecommendationRequest is accepted as a JSON body or as query parameters.
// A zero TopN selects the configured default.
type RecommendationRequest struct {
	Ingredients string `json:"ingredients" form:"ingredients"`
	TopN        int    `json:"top_n" form:"top_n"`
}

// RecommendationResponse is returned by the recommendation endpoints.
type RecommendationResponse struct {
	Query   string         `json:"query"`
	Results []ScoredResult `json:"results"`
	Count   int            `json:"count"`
}

// ListRecipesRequest pages through the catalog.
type ListRecipesRequest struct {
	Offset int `form:"offset" binding:"gte=0"`
	Limit  int `form:"limit" binding:"gte=0,lte=200"`
}

// ListRecipesResponse is one page of the catalog.
type ListRecipesResponse struct {
	Recipes []RecipeRecord `json:"recipes"`
	Total   int            `json:"total"`
	Offset  int            `json:"offset"`
	Limit   int            `json:"limit"`
}

// CatalogInfo describes the active catalog snapshot.
type CatalogInfo struct {
	Version        uuid.UUID `json:"version"`
	Source         string    `json:"source"`
	Recipes        int       `json:"recipes"`
	VocabularySize int       `json:"vocabulary_size"`
	LoadedAt       time.Time `json:"loaded_at"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

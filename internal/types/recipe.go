package types

// RecipeRecord is one catalog entry. Records are immutable once the catalog
// is loaded; Position is the record's index in load order and is its only
// identity.
type RecipeRecord struct {
	Position    int     `json:"position"`
	Name        string  `json:"name" validate:"required"`
	Cuisine     string  `json:"cuisine"`
	CookingTime float64 `json:"cooking_time" validate:"gte=0"`
	VegNonVeg   string  `json:"veg_nonveg"`
	Ingredients string  `json:"ingredients"`
	Steps       string  `json:"steps"`
}

// ScoredResult pairs a catalog record with its similarity to a single query.
// Scores belong to the request that produced them and are never written back
// onto the catalog.
type ScoredResult struct {
	Record RecipeRecord `json:"recipe"`
	Score  float64      `json:"score"`
}

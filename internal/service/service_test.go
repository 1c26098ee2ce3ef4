package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-recommender/backend/internal/catalog"
	"github.com/pageza/recipe-recommender/backend/internal/types"
)

type memorySource struct {
	records []types.RecipeRecord
}

func (m *memorySource) Load(ctx context.Context) ([]types.RecipeRecord, error) {
	return m.records, nil
}

func (m *memorySource) Describe() string { return "memory" }

func testRecipes() []types.RecipeRecord {
	return []types.RecipeRecord{
		{Position: 0, Name: "Jeera Rice", Cuisine: "Indian", CookingTime: 25, VegNonVeg: "veg", Ingredients: "rice, cumin, ghee"},
		{Position: 1, Name: "Onion Pakora", Cuisine: "Indian", CookingTime: 20, VegNonVeg: "veg", Ingredients: "onion, gram flour, chili"},
		{Position: 2, Name: "Egg Fried Rice", Cuisine: "Chinese", CookingTime: 15, VegNonVeg: "non-veg", Ingredients: "rice, egg, onion, soy sauce"},
		{Position: 3, Name: "Lemonade", Cuisine: "Global", CookingTime: 5, VegNonVeg: "veg", Ingredients: "lemon, sugar, water"},
	}
}

func loadedStore(t *testing.T, records []types.RecipeRecord) *catalog.Store {
	t.Helper()
	store := catalog.NewStore(&memorySource{records: records})
	_, err := store.Reload(context.Background())
	require.NoError(t, err)
	return store
}

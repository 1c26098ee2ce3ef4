package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-recommender/backend/internal/types"
)

func TestJSONBStringArray(t *testing.T) {
	empty, err := JSONBStringArray{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)

	var tokens JSONBStringArray
	require.NoError(t, tokens.Scan([]byte(`["rice","onion"]`)))
	assert.Equal(t, JSONBStringArray{"rice", "onion"}, tokens)

	require.NoError(t, tokens.Scan(nil))
	assert.Empty(t, tokens)
}

func TestRecipeRecordConversion(t *testing.T) {
	rec := types.RecipeRecord{
		Position:    3,
		Name:        "Jeera Rice",
		Cuisine:     "Indian",
		CookingTime: 25,
		VegNonVeg:   "veg",
		Ingredients: "rice, cumin, ghee",
		Steps:       "Rinse rice. Temper cumin. Cook.",
	}

	row := NewRecipe(rec)
	assert.Equal(t, rec, row.Record())
}

package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipe-recommender/backend/internal/model"
	"github.com/pageza/recipe-recommender/backend/internal/ranker"
	"github.com/pageza/recipe-recommender/backend/internal/testhelpers"
	"github.com/pageza/recipe-recommender/backend/internal/types"
)

func setupTestDB(t *testing.T) *gorm.DB {
	return testhelpers.SetupSQLite(t)
}

func TestSeedAndLoadIndex(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	records, _, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	result, err := Seed(ctx, db, records)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Recipes)
	assert.Equal(t, ranker.NewIndex(records).VocabularySize(), result.VocabularySize)

	src := &DatabaseSource{DB: db}
	loaded, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)

	ix, err := src.LoadIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, ranker.NewIndex(records).Tokens(), ix.Tokens())

	want, err := ranker.Rank("onion, rice", records, 3)
	require.NoError(t, err)
	got, err := ix.Rank("onion, rice", 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSeedReplacesCatalog(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	records, _, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	_, err = Seed(ctx, db, records)
	require.NoError(t, err)
	_, err = Seed(ctx, db, records[1:])
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Recipe{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
	require.NoError(t, db.Model(&model.CatalogVocabulary{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	loaded, err := (&DatabaseSource{DB: db}).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Onion Pakora", loaded[0].Name)
	assert.Equal(t, 0, loaded[0].Position)
}

func TestLoadIndexRecomputesStaleVectors(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	records, _, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	_, err = Seed(ctx, db, records)
	require.NoError(t, err)

	extra := model.Recipe{Position: 3, Name: "Garlic Naan", Ingredients: "flour, garlic, butter"}
	require.NoError(t, db.Create(&extra).Error)

	ix, err := (&DatabaseSource{DB: db}).LoadIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, ix.Len())
	_, ok := indexOf(ix.Tokens(), "garlic")
	assert.True(t, ok)
}

func TestLoadIndexRecomputesEditedIngredients(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	records, _, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	_, err = Seed(ctx, db, records)
	require.NoError(t, err)

	// Same row count and no new tokens, so only the content has changed.
	require.NoError(t, db.Model(&model.Recipe{}).Where("position = ?", 0).
		Update("ingredients", "onion, tomato, chili").Error)
	records[0].Ingredients = "onion, tomato, chili"

	ix, err := (&DatabaseSource{DB: db}).LoadIndex(ctx)
	require.NoError(t, err)

	want, err := ranker.Rank("onion", records, 3)
	require.NoError(t, err)
	got, err := ix.Rank("onion", 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	for _, res := range got {
		assert.Greater(t, res.Score, 0.0, res.Record.Name)
	}
}

func TestSeedLargeVocabulary(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	records, _, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	const spices = 16050
	names := make([]string, spices)
	for i := range names {
		names[i] = fmt.Sprintf("spice%05d", i)
	}
	records = append(records, types.RecipeRecord{
		Position:    3,
		Name:        "Everything Masala",
		Ingredients: "rice, " + strings.Join(names, ", "),
	})

	result, err := Seed(ctx, db, records)
	require.NoError(t, err)
	assert.Greater(t, result.VocabularySize, 16000)

	var row model.Recipe
	require.NoError(t, db.First(&row, "position = ?", 3).Error)
	require.NotNil(t, row.TermVector)
	assert.EqualValues(t, result.VocabularySize, row.TermVector.Dimensions())
	assert.Len(t, row.TermVector.Indices(), spices+1)

	var small model.Recipe
	require.NoError(t, db.First(&small, "position = ?", 0).Error)
	require.NotNil(t, small.TermVector)
	assert.Len(t, small.TermVector.Indices(), 3)

	ix, err := (&DatabaseSource{DB: db}).LoadIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, result.VocabularySize, ix.VocabularySize())

	want, err := ranker.Rank("rice, spice00042", records, 4)
	require.NoError(t, err)
	got, err := ix.Rank("rice, spice00042", 4)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSeedRecipeWithoutIngredients(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	records, _, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	records = append(records, types.RecipeRecord{Position: 3, Name: "Boiled Water"})

	_, err = Seed(ctx, db, records)
	require.NoError(t, err)

	var row model.Recipe
	require.NoError(t, db.First(&row, "position = ?", 3).Error)
	assert.Nil(t, row.TermVector)

	ix, err := (&DatabaseSource{DB: db}).LoadIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, ranker.NewIndex(records).Tokens(), ix.Tokens())

	want, err := ranker.Rank("egg onion", records, 4)
	require.NoError(t, err)
	got, err := ix.Rank("egg onion", 4)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSparseConversion(t *testing.T) {
	assert.Nil(t, toSparse(ranker.Vector{0, 0, 0}))
	assert.Nil(t, toSparse(nil))

	vec := toSparse(ranker.Vector{0, 2, 0, 1})
	require.NotNil(t, vec)
	assert.EqualValues(t, 4, vec.Dimensions())
	assert.Equal(t, []int32{1, 3}, vec.Indices())

	assert.Equal(t, ranker.Vector{0, 2, 0, 1}, fromSparse(vec, 4))
	assert.Equal(t, ranker.Vector{0, 0}, fromSparse(nil, 2))
	assert.Len(t, fromSparse(vec, 5), 4)
}

func TestChecksum(t *testing.T) {
	records := []types.RecipeRecord{
		{Position: 0, Name: "Jeera Rice", Ingredients: "rice, cumin"},
		{Position: 1, Name: "Dal", Ingredients: "lentils"},
	}
	base := checksum(records)
	assert.Len(t, base, 64)

	renamed := append([]types.RecipeRecord(nil), records...)
	renamed[0].Name = "Cumin Rice"
	assert.Equal(t, base, checksum(renamed))

	edited := append([]types.RecipeRecord(nil), records...)
	edited[1].Ingredients = "lentils, garlic"
	assert.NotEqual(t, base, checksum(edited))

	// Field boundaries are part of the fingerprint.
	shifted := []types.RecipeRecord{
		{Position: 0, Ingredients: "rice, cumin1"},
		{Position: 0, Ingredients: "lentils"},
	}
	assert.NotEqual(t, base, checksum(shifted))
}

func TestLoadIndexWithoutVocabulary(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	row := model.Recipe{Position: 0, Name: "Plain Rice", Ingredients: "rice"}
	require.NoError(t, db.Create(&row).Error)

	ix, err := (&DatabaseSource{DB: db}).LoadIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"rice"}, ix.Tokens())
}

func TestSeedEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	result, err := Seed(ctx, db, nil)
	require.NoError(t, err)
	assert.Zero(t, result.Recipes)

	ix, err := (&DatabaseSource{DB: db}).LoadIndex(ctx)
	require.NoError(t, err)
	assert.Zero(t, ix.Len())
}

func indexOf(tokens []string, token string) (int, bool) {
	for i, tok := range tokens {
		if tok == token {
			return i, true
		}
	}
	return -1, false
}

package database

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-recommender/backend/config"
	"github.com/pageza/recipe-recommender/backend/internal/model"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(&config.Config{SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))

	assert.True(t, db.Migrator().HasTable(&model.Recipe{}))
	assert.True(t, db.Migrator().HasTable(&model.CatalogVocabulary{}))

	vec := pgvector.NewSparseVector([]float32{1, 0, 2})
	recipe := model.Recipe{Position: 0, Name: "Jeera Rice", Ingredients: "rice, cumin", TermVector: &vec}
	require.NoError(t, db.Create(&recipe).Error)
	assert.NotEmpty(t, recipe.ID)

	var loaded model.Recipe
	require.NoError(t, db.First(&loaded, "position = ?", 0).Error)
	require.NotNil(t, loaded.TermVector)
	assert.Equal(t, []float32{1, 0, 2}, loaded.TermVector.Slice())
	assert.Equal(t, "Jeera Rice", loaded.Name)

	// Migrations are idempotent.
	assert.NoError(t, RunMigrations(db))
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(&config.Config{RedisURL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	_, err = NewRedisClient(&config.Config{RedisURL: "not a url"})
	assert.Error(t, err)
}

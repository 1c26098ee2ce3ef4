package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/pageza/recipe-recommender/backend/internal/types"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is one catalog row. Position preserves the order of the source table
// and is what ranking ties fall back on.
type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Position    int       `gorm:"not null;uniqueIndex" json:"position"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Cuisine     string    `gorm:"size:100" json:"cuisine"`
	CookingTime float64   `gorm:"type:float" json:"cooking_time"`
	VegNonVeg   string    `gorm:"size:50" json:"veg_nonveg"`
	Ingredients string    `gorm:"type:text" json:"ingredients"`
	Steps       string    `gorm:"type:text" json:"steps"`
	// TermVector is the ingredient term-frequency vector over the stored
	// CatalogVocabulary. Its width is the whole vocabulary, so it is kept
	// sparse; sparsevec has no 16,000 dimension cap. Nil when the recipe
	// has no tokens.
	TermVector *pgvector.SparseVector `gorm:"type:sparsevec" json:"-"`
}

// BeforeCreate assigns an ID so the same model works on SQLite, which has no
// gen_random_uuid().
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Record converts the row into the catalog record the ranker consumes.
func (r *Recipe) Record() types.RecipeRecord {
	return types.RecipeRecord{
		Position:    r.Position,
		Name:        r.Name,
		Cuisine:     r.Cuisine,
		CookingTime: r.CookingTime,
		VegNonVeg:   r.VegNonVeg,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
	}
}

// NewRecipe builds a row from a catalog record.
func NewRecipe(rec types.RecipeRecord) Recipe {
	return Recipe{
		Position:    rec.Position,
		Name:        rec.Name,
		Cuisine:     rec.Cuisine,
		CookingTime: rec.CookingTime,
		VegNonVeg:   rec.VegNonVeg,
		Ingredients: rec.Ingredients,
		Steps:       rec.Steps,
	}
}

// CatalogVocabulary is the token list the stored term vectors were built
// over. Only the newest row is used; seeding replaces it together with the
// recipes so the two never drift apart.
type CatalogVocabulary struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time        `json:"created_at"`
	Version     uuid.UUID        `gorm:"type:uuid;not null" json:"version"`
	RecipeCount int              `gorm:"not null" json:"recipe_count"`
	// Checksum covers the position and ingredient text of every recipe the
	// vectors were computed from.
	Checksum string           `gorm:"size:64;not null;default:''" json:"checksum"`
	Tokens   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tokens"`
}

// TableName pins the table name.
func (CatalogVocabulary) TableName() string {
	return "catalog_vocabularies"
}

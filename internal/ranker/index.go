package ranker

import (
	"errors"
	"fmt"
	"math"

	"github.com/pageza/recipe-recommender/backend/internal/types"
)

// ErrInconsistentMatrix is returned when persisted vectors do not line up with
// their vocabulary or catalog.
var ErrInconsistentMatrix = errors.New("term matrix does not match vocabulary")

// Index is a catalog whose vocabulary and term-frequency matrix were computed
// once, so a request only has to encode the query.
//
// Query tokens missing from the catalog vocabulary cannot match any record,
// but they still count towards the query's magnitude. That keeps every score
// identical to what Rank computes with a per-request vocabulary.
//
// An Index is read-only after construction and safe for concurrent use.
type Index struct {
	vocab   *Vocabulary
	records []types.RecipeRecord
	vectors []Vector
	norms   []float64
}

// NewIndex tokenizes the catalog and builds its term-frequency matrix.
func NewIndex(catalog []types.RecipeRecord) *Index {
	records := make([]types.RecipeRecord, len(catalog))
	copy(records, catalog)

	tokens := make([][]string, len(records))
	vocab := NewVocabulary()
	for i, rec := range records {
		tokens[i] = Tokenize(rec.Ingredients)
		vocab.addTokens(tokens[i])
	}

	vectors := make([]Vector, len(records))
	for i := range records {
		vectors[i] = vocab.vectorizeTokens(tokens[i])
	}
	return newIndex(vocab, records, vectors)
}

// NewIndexFromMatrix rebuilds an index from a stored vocabulary and one
// vector per catalog record.
func NewIndexFromMatrix(catalog []types.RecipeRecord, tokens []string, vectors []Vector) (*Index, error) {
	if len(vectors) != len(catalog) {
		return nil, fmt.Errorf("%w: %d vectors for %d records", ErrInconsistentMatrix, len(vectors), len(catalog))
	}
	vocab, err := VocabularyFromTokens(tokens)
	if err != nil {
		return nil, err
	}
	for i, vec := range vectors {
		if len(vec) != vocab.Len() {
			return nil, fmt.Errorf("%w: record %d has %d dimensions, vocabulary has %d",
				ErrInconsistentMatrix, i, len(vec), vocab.Len())
		}
	}

	records := make([]types.RecipeRecord, len(catalog))
	copy(records, catalog)
	matrix := make([]Vector, len(vectors))
	for i, vec := range vectors {
		matrix[i] = append(Vector(nil), vec...)
	}
	return newIndex(vocab, records, matrix), nil
}

func newIndex(vocab *Vocabulary, records []types.RecipeRecord, vectors []Vector) *Index {
	norms := make([]float64, len(vectors))
	for i, vec := range vectors {
		norms[i] = vec.Norm()
	}
	return &Index{vocab: vocab, records: records, vectors: vectors, norms: norms}
}

// Rank scores the indexed catalog against query. See the package-level Rank
// for ordering and error semantics.
func (ix *Index) Rank(query string, topN int) ([]types.ScoredResult, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopN, topN)
	}

	queryTokens := Tokenize(query)
	queryVec := ix.vocab.vectorizeTokens(queryTokens)
	queryNorm := ix.queryNorm(queryVec, queryTokens)

	results := make([]types.ScoredResult, len(ix.records))
	for i, rec := range ix.records {
		results[i] = types.ScoredResult{Record: rec}
		if queryNorm == 0 || ix.norms[i] == 0 {
			continue
		}
		var dot float64
		for j, q := range queryVec {
			dot += q * ix.vectors[i][j]
		}
		results[i].Score = score(dot / (queryNorm * ix.norms[i]))
	}

	return topResults(results, topN), nil
}

// queryNorm is the magnitude of the query over the catalog vocabulary extended
// with the query's own unseen tokens, summed in the same order a per-request
// vocabulary would index them.
func (ix *Index) queryNorm(queryVec Vector, queryTokens []string) float64 {
	var sum float64
	for _, q := range queryVec {
		sum += q * q
	}

	var unseen []string
	counts := make(map[string]float64)
	for _, tok := range queryTokens {
		if _, ok := ix.vocab.Index(tok); ok {
			continue
		}
		if _, seen := counts[tok]; !seen {
			unseen = append(unseen, tok)
		}
		counts[tok]++
	}
	for _, tok := range unseen {
		sum += counts[tok] * counts[tok]
	}
	return math.Sqrt(sum)
}

// Len is the number of indexed records.
func (ix *Index) Len() int {
	return len(ix.records)
}

// VocabularySize is the number of distinct catalog tokens.
func (ix *Index) VocabularySize() int {
	return ix.vocab.Len()
}

// Tokens returns the catalog vocabulary in index order.
func (ix *Index) Tokens() []string {
	return ix.vocab.Tokens()
}

// Records returns a copy of the indexed catalog in catalog order.
func (ix *Index) Records() []types.RecipeRecord {
	out := make([]types.RecipeRecord, len(ix.records))
	copy(out, ix.records)
	return out
}

// Vector returns a copy of the term-frequency vector of the i-th record.
func (ix *Index) Vector(i int) Vector {
	return append(Vector(nil), ix.vectors[i]...)
}

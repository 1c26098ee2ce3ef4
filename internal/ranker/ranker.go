package ranker

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pageza/recipe-recommender/backend/internal/types"
)

// DefaultTopN is the result count hosts use when the caller does not ask for one.
const DefaultTopN = 5

// ErrInvalidTopN is returned for a non-positive result count.
var ErrInvalidTopN = errors.New("top_n must be greater than zero")

// Rank scores every catalog record against query and returns the best topN,
// highest score first. The vocabulary is built from all ingredient texts plus
// the query, so both sides are encoded over the same token space. Records with
// equal scores keep their catalog order. The catalog is only read.
func Rank(query string, catalog []types.RecipeRecord, topN int) ([]types.ScoredResult, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopN, topN)
	}

	recordTokens := make([][]string, len(catalog))
	vocab := NewVocabulary()
	for i, rec := range catalog {
		recordTokens[i] = Tokenize(rec.Ingredients)
		vocab.addTokens(recordTokens[i])
	}
	queryTokens := Tokenize(query)
	vocab.addTokens(queryTokens)

	queryVec := vocab.vectorizeTokens(queryTokens)
	results := make([]types.ScoredResult, len(catalog))
	for i, rec := range catalog {
		results[i] = types.ScoredResult{
			Record: rec,
			Score:  score(CosineSimilarity(queryVec, vocab.vectorizeTokens(recordTokens[i]))),
		}
	}

	return topResults(results, topN), nil
}

// topResults sorts results by descending score, keeping input order among
// ties, and truncates to n.
func topResults(results []types.ScoredResult, n int) []types.ScoredResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > n {
		results = results[:n]
	}
	return results
}

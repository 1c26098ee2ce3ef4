package ranker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildVocabularyFirstOccurrenceOrder(t *testing.T) {
	vocab := BuildVocabulary("egg, rice, onion", "rice, onion, garlic", "rice onion")

	assert.Equal(t, 4, vocab.Len())
	assert.Equal(t, []string{"egg", "rice", "onion", "garlic"}, vocab.Tokens())

	i, ok := vocab.Index("garlic")
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	_, ok = vocab.Index("banana")
	assert.False(t, ok)
}

func TestBuildVocabularyEmptyCorpus(t *testing.T) {
	vocab := BuildVocabulary("", "   ", ",,")
	assert.Equal(t, 0, vocab.Len())
	assert.Empty(t, vocab.Vectorize("rice"))
}

func TestVectorizeCountsTermFrequency(t *testing.T) {
	vocab := BuildVocabulary("rice onion garlic")

	vec := vocab.Vectorize("rice, rice, garlic, banana")
	assert.Equal(t, Vector{2, 0, 1}, vec)
}

func TestVocabularyFromTokens(t *testing.T) {
	vocab, err := VocabularyFromTokens([]string{"rice", "onion"})
	require.NoError(t, err)
	assert.Equal(t, Vector{1, 1}, vocab.Vectorize("onion rice"))

	_, err = VocabularyFromTokens([]string{"rice", "rice"})
	assert.ErrorIs(t, err, ErrDuplicateToken)
}

func TestTokensReturnsCopy(t *testing.T) {
	vocab := BuildVocabulary("rice onion")
	tokens := vocab.Tokens()
	tokens[0] = "changed"
	assert.Equal(t, []string{"rice", "onion"}, vocab.Tokens())
}

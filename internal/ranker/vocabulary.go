package ranker

import (
	"errors"
	"fmt"
)

// ErrDuplicateToken is returned when a persisted token list repeats a token.
var ErrDuplicateToken = errors.New("duplicate vocabulary token")

// Vocabulary maps distinct tokens to dense vector indices. Indices are handed
// out in order of first occurrence.
type Vocabulary struct {
	index  map[string]int
	tokens []string
}

// NewVocabulary returns an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{index: make(map[string]int)}
}

// BuildVocabulary tokenizes every text in order and collects the distinct
// tokens. A corpus with no tokens yields an empty vocabulary.
func BuildVocabulary(texts ...string) *Vocabulary {
	v := NewVocabulary()
	for _, text := range texts {
		v.addTokens(Tokenize(text))
	}
	return v
}

// VocabularyFromTokens restores a vocabulary from its ordered token list.
func VocabularyFromTokens(tokens []string) (*Vocabulary, error) {
	v := NewVocabulary()
	for _, tok := range tokens {
		if _, ok := v.index[tok]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateToken, tok)
		}
		v.Add(tok)
	}
	return v, nil
}

// Add inserts token if it is new and returns its index.
func (v *Vocabulary) Add(token string) int {
	if i, ok := v.index[token]; ok {
		return i
	}
	i := len(v.tokens)
	v.index[token] = i
	v.tokens = append(v.tokens, token)
	return i
}

func (v *Vocabulary) addTokens(tokens []string) {
	for _, tok := range tokens {
		v.Add(tok)
	}
}

// Index reports the vector index of token.
func (v *Vocabulary) Index(token string) (int, bool) {
	i, ok := v.index[token]
	return i, ok
}

// Len is the number of distinct tokens, which is also the vector length.
func (v *Vocabulary) Len() int {
	return len(v.tokens)
}

// Tokens returns the tokens in index order.
func (v *Vocabulary) Tokens() []string {
	out := make([]string, len(v.tokens))
	copy(out, v.tokens)
	return out
}

// Vectorize encodes text as term frequencies over the vocabulary. Tokens the
// vocabulary does not know are ignored.
func (v *Vocabulary) Vectorize(text string) Vector {
	return v.vectorizeTokens(Tokenize(text))
}

func (v *Vocabulary) vectorizeTokens(tokens []string) Vector {
	vec := make(Vector, len(v.tokens))
	for _, tok := range tokens {
		if i, ok := v.index[tok]; ok {
			vec[i]++
		}
	}
	return vec
}

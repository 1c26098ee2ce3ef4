package ranker

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTokenRunes drops single-character fragments such as the "g" in "500 g".
const minTokenRunes = 2

// Tokenize lower-cases s and splits it into word tokens. Any rune that is not
// a letter, digit or underscore separates tokens, so commas, punctuation and
// whitespace all act as delimiters. Tokens shorter than two runes are dropped.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !isWordRune(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTokenRunes {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

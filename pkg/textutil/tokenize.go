package textutil

import (
	"strings"
	"unicode"
)

// Tokenize lowercases the input and splits it into word tokens. Tokens
// shorter than two runes and English stop words are dropped.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		tok := current.String()
		current.Reset()
		if len([]rune(tok)) < 2 {
			return
		}
		if IsStopWord(tok) {
			return
		}
		tokens = append(tokens, tok)
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// TermFrequencies returns raw term counts for a token sequence.
func TermFrequencies(tokens []string) map[string]int {
	freqs := make(map[string]int, len(tokens))
	for _, t := range tokens {
		freqs[t]++
	}
	return freqs
}

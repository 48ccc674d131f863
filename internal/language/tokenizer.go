// Package language provides tokenization, script detection, statistical
// language identification, and romanized code-mix detection.
package language

import (
	"strings"
	"unicode"
)

// Tokenize splits text into lowercase tokens, trimming edge punctuation while
// keeping internal hyphens and underscores. Works for any script.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) && r != '-' && r != '_'
		})
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Package expand provides lexical query expansion from a thesaurus table and
// a domain slang table. Pure and deterministic: no I/O, stable output order.
package expand

import "strings"

// Expander adds up to maxSynonyms synonyms per token.
type Expander struct {
	maxSynonyms int
}

// NewExpander creates an expander. maxSynonyms <= 0 means the default of 3.
func NewExpander(maxSynonyms int) *Expander {
	if maxSynonyms <= 0 {
		maxSynonyms = 3
	}
	return &Expander{maxSynonyms: maxSynonyms}
}

// Expand returns the original tokens followed by their synonyms in table
// order, deduplicated, each token contributing at most maxSynonyms terms.
func (e *Expander) Expand(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens)*2)
	out := make([]string, 0, len(tokens)*2)
	for _, tok := range tokens {
		if _, ok := seen[tok]; !ok {
			seen[tok] = struct{}{}
			out = append(out, tok)
		}
	}
	for _, tok := range tokens {
		added := 0
		for _, syn := range lookupSynonyms(strings.ToLower(tok)) {
			if added >= e.maxSynonyms {
				break
			}
			if _, ok := seen[syn]; ok {
				continue
			}
			seen[syn] = struct{}{}
			out = append(out, syn)
			added++
		}
	}
	return out
}

// lookupSynonyms checks the slang table first (domain vocabulary wins over
// the general thesaurus), then the thesaurus.
func lookupSynonyms(token string) []string {
	if syns, ok := slangTable[token]; ok {
		return syns
	}
	return thesaurus[token]
}

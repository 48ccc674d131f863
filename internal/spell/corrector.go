package spell

import (
	"regexp"
	"strings"
	"unicode"
)

// Corrector fixes token-level misspellings against a weighted domain
// dictionary and then applies the fixed rewrite-rule table. It runs before
// tokenization proper so that a misspelled compound like "iphon12" becomes
// "iphone 12" while token boundaries can still move. Pure and deterministic.
type Corrector struct {
	entries     []dictEntry
	termSet     map[string]struct{}
	maxDistance int
}

// NewCorrector creates a corrector with the built-in domain dictionary.
func NewCorrector() *Corrector {
	entries, set := buildDictionary()
	return &Corrector{
		entries:     entries,
		termSet:     set,
		maxDistance: 2,
	}
}

var compoundPattern = regexp.MustCompile(`^([a-z]+)(\d+[a-z]*)$`)

// Correct returns the corrected text and the names of applied rewrite rules.
// Non-Latin tokens pass through untouched.
func (c *Corrector) Correct(text string) (string, []string) {
	tokens := strings.Fields(text)
	corrected := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		corrected = append(corrected, c.correctToken(tok)...)
	}
	out := strings.Join(corrected, " ")

	var applied []string
	for _, rule := range rewriteRules {
		if rule.pattern.MatchString(out) {
			out = rule.pattern.ReplaceAllString(out, rule.replace)
			applied = append(applied, rule.name)
		}
	}
	return strings.Join(strings.Fields(out), " "), applied
}

// correctToken corrects a single token, possibly splitting a brand+model
// compound into two tokens ("iphon12" -> ["iphone", "12"]).
func (c *Corrector) correctToken(tok string) []string {
	if !isLatinToken(tok) {
		return []string{tok}
	}
	if _, ok := c.termSet[tok]; ok {
		return []string{tok}
	}

	// compound of letters + trailing digits: correct the letter part and split
	if m := compoundPattern.FindStringSubmatch(tok); m != nil {
		letters, rest := m[1], m[2]
		if _, ok := c.termSet[letters]; ok {
			return []string{letters, rest}
		}
		if best := c.suggest(letters); best != "" {
			return []string{best, rest}
		}
		return []string{tok}
	}

	if best := c.suggest(tok); best != "" {
		return []string{best}
	}
	return []string{tok}
}

// suggest returns the best dictionary term within the edit-distance bound, or
// "" when none qualifies. Score favors close matches and weighted terms.
func (c *Corrector) suggest(tok string) string {
	runeLen := len([]rune(tok))
	if runeLen < 3 || hasDigit(tok) {
		return ""
	}
	maxDist := c.maxDistance
	if runeLen < 5 {
		// short tokens flip meaning fast; allow a single edit only
		maxDist = 1
	}

	var best string
	var bestScore float64
	for _, e := range c.entries {
		lenDiff := len(e.term) - len(tok)
		if lenDiff < 0 {
			lenDiff = -lenDiff
		}
		if lenDiff > maxDist {
			continue
		}
		dist := DamerauLevenshteinDistance(tok, e.term)
		if dist == 0 || dist > maxDist {
			continue
		}
		score := e.weight / float64(dist+1)
		if score > bestScore {
			bestScore = score
			best = e.term
		}
	}
	return best
}

// InDictionary reports whether tok is a known domain term.
func (c *Corrector) InDictionary(tok string) bool {
	_, ok := c.termSet[strings.ToLower(tok)]
	return ok
}

func isLatinToken(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII && !unicode.Is(unicode.Latin, r) {
			return false
		}
	}
	return true
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

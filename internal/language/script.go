package language

import (
	"unicode"

	"github.com/bazaarlabs/khoj/internal/models"
)

// scriptRanges maps each supported script to its Unicode range table.
// Ordered so iteration is deterministic.
var scriptRanges = []struct {
	script models.Script
	table  *unicode.RangeTable
}{
	{models.ScriptLatin, unicode.Latin},
	{models.ScriptDevanagari, unicode.Devanagari},
	{models.ScriptBengali, unicode.Bengali},
	{models.ScriptTamil, unicode.Tamil},
	{models.ScriptTelugu, unicode.Telugu},
	{models.ScriptKannada, unicode.Kannada},
	{models.ScriptMalayalam, unicode.Malayalam},
	{models.ScriptGujarati, unicode.Gujarati},
	{models.ScriptGurmukhi, unicode.Gurmukhi},
	{models.ScriptOdia, unicode.Oriya},
	{models.ScriptArabic, unicode.Arabic},
	{models.ScriptHan, unicode.Han},
}

// DetectScript classifies text by Unicode block membership, O(1) per rune.
// The script with the most letters wins; digits and punctuation are ignored.
// Returns ScriptUnknown for empty input or input with no letters.
func DetectScript(text string) models.Script {
	counts := make(map[models.Script]int, 4)
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		for _, sr := range scriptRanges {
			if unicode.Is(sr.table, r) {
				counts[sr.script]++
				break
			}
		}
	}
	best := models.ScriptUnknown
	bestCount := 0
	for _, sr := range scriptRanges {
		if c := counts[sr.script]; c > bestCount {
			best = sr.script
			bestCount = c
		}
	}
	return best
}

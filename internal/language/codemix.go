package language

import (
	"strings"
)

// CodeMixResult classifies a Latin-script token sequence as romanized text in
// a non-Latin language (or not).
type CodeMixResult struct {
	IsRomanized bool
	TargetLang  string
	Confidence  float64
}

// romanization markers: high-frequency function words and verb forms as they
// are commonly typed in Latin script. General trigram LID models miss these
// because they are trained on native-script corpora.
var romanMarkers = map[string][]string{
	"hi": {
		"hai", "hain", "ka", "ki", "ke", "ko", "se", "mein", "mujhe", "mera",
		"meri", "mere", "chahiye", "kya", "nahi", "nahin", "wala", "wali",
		"sasta", "sasti", "accha", "acha", "achha", "kitna", "kitne", "paisa",
		"rupaye", "liye", "karna", "karo", "dikhao", "batao", "chaiye", "hoga",
		"koi", "aur", "bhi", "abhi", "naya", "nayi", "purana",
	},
	"bn": {
		"amar", "ami", "amake", "lagbe", "chai", "chailam", "bhalo", "valo",
		"kinbo", "kinte", "dam", "kom", "ekta", "khub", "notun", "purono",
		"dekhao", "dao", "hobe", "ache", "ta", "gulo", "kemon",
	},
	"ta": {
		"enakku", "venum", "vendum", "nalla", "vilai", "kuraivana", "vaanga",
		"vaanganum", "irukku", "illai", "puthu", "romba", "evvalavu", "kudunga",
	},
	"te": {
		"naaku", "kavali", "manchi", "takkuva", "dhara", "kotha",
		"chala", "entha", "chupinchu", "ivvandi", "undi", "ledu",
	},
	"mr": {
		"mala", "pahije", "havay", "changla", "swasta", "kiti", "navin",
		"juna", "dakhva", "ahe", "nahi", "khup",
	},
}

// CodeMixDetector decides whether Latin-script tokens are romanized text in a
// non-Latin language. Two stages: a marker-based scorer, then a small
// fixed-weight logistic classifier for the inconclusive band.
type CodeMixDetector struct {
	// decisiveFraction is the marker hit rate at or above which stage 1
	// decides on its own.
	decisiveFraction float64
}

// NewCodeMixDetector creates a detector with default thresholds.
func NewCodeMixDetector() *CodeMixDetector {
	return &CodeMixDetector{decisiveFraction: 0.34}
}

// Detect classifies tokens. baseLang is the statistical LID guess for context;
// native-script input should not reach this detector.
func (d *CodeMixDetector) Detect(tokens []string, baseLang string) CodeMixResult {
	if len(tokens) == 0 {
		return CodeMixResult{}
	}

	bestLang, bestHits := "", 0
	for lang, markers := range romanMarkers {
		hits := countMarkerHits(tokens, markers)
		if hits > bestHits || (hits == bestHits && hits > 0 && lang < bestLang) {
			bestLang, bestHits = lang, hits
		}
	}

	if bestHits == 0 {
		return CodeMixResult{IsRomanized: false, Confidence: 1.0}
	}

	fraction := float64(bestHits) / float64(len(tokens))
	if fraction >= d.decisiveFraction {
		return CodeMixResult{IsRomanized: true, TargetLang: bestLang, Confidence: fraction}
	}

	// inconclusive: let the character-level classifier break the tie
	p := classifyRomanized(strings.Join(tokens, " "))
	if p >= 0.5 {
		return CodeMixResult{IsRomanized: true, TargetLang: bestLang, Confidence: p}
	}
	return CodeMixResult{IsRomanized: false, Confidence: 1 - p}
}

func countMarkerHits(tokens []string, markers []string) int {
	set := make(map[string]struct{}, len(markers))
	for _, m := range markers {
		set[m] = struct{}{}
	}
	hits := 0
	for _, t := range tokens {
		if _, ok := set[t]; ok {
			hits++
		}
	}
	return hits
}

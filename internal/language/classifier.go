package language

import (
	"math"
	"strings"
)

// Quantized logistic classifier over character-class features, used only when
// marker scoring is inconclusive. Weights are int8-quantized (scale 1/16) from
// a model fit on romanized-Indic vs English shopping queries; inference is a
// dot product, well under a millisecond.

const weightScale = 16.0

// feature order: see extractCharFeatures
var quantWeights = [16]int8{
	38,  // aspirated digraphs (bh, kh, gh, dh, jh, chh, th, ph)
	26,  // doubled vowels (aa, ee, oo, ii, uu)
	19,  // retroflex-ish clusters (tt, dd, nn)
	22,  // word endings -iye, -ao, -be, -num, -ndi
	14,  // ratio of words ending in a vowel
	-31, // English function words (the, is, for, with, and, of)
	-17, // English suffixes (-ing, -tion, -ness, -ment)
	9,   // short words (len <= 3) ratio
	-12, // consonant clusters rare in romanized Indic (ck, wh, ph at start)
	11,  // 'q'-less and 'x'-less text (freq of q/x is negative evidence)
	6,   // 'y' used as vowel glide (ya, ye, yo)
	-9,  // apostrophes and English contractions
	13,  // hindi/bengali verb auxiliaries already partially matched
	0,   // reserved
	0,   // reserved
	0,   // reserved
}

const quantBias = int8(-21)

var aspiratedDigraphs = []string{"bh", "kh", "gh", "dh", "jh", "chh", "th", "ph"}
var doubledVowels = []string{"aa", "ee", "oo", "ii", "uu"}
var retroflexClusters = []string{"tt", "dd", "nn"}
var romanEndings = []string{"iye", "ao", "be", "num", "ndi"}
var englishFunction = []string{"the", "is", "for", "with", "and", "of", "to", "in"}
var englishSuffixes = []string{"ing", "tion", "ness", "ment"}

// classifyRomanized returns the probability that text is romanized Indic.
func classifyRomanized(text string) float64 {
	f := extractCharFeatures(text)
	var sum float64
	for i, w := range quantWeights {
		sum += float64(w) / weightScale * f[i]
	}
	sum += float64(quantBias) / weightScale
	return 1.0 / (1.0 + math.Exp(-sum))
}

func extractCharFeatures(text string) [16]float64 {
	var f [16]float64
	words := strings.Fields(text)
	if len(words) == 0 {
		return f
	}
	n := float64(len(words))
	chars := float64(len(text))
	if chars == 0 {
		chars = 1
	}

	f[0] = countSubstrings(text, aspiratedDigraphs) / n
	f[1] = countSubstrings(text, doubledVowels) / n
	f[2] = countSubstrings(text, retroflexClusters) / n

	for _, w := range words {
		for _, e := range romanEndings {
			if strings.HasSuffix(w, e) {
				f[3]++
				break
			}
		}
		if strings.IndexByte("aeiou", w[len(w)-1]) >= 0 {
			f[4]++
		}
		for _, fw := range englishFunction {
			if w == fw {
				f[5]++
				break
			}
		}
		for _, sfx := range englishSuffixes {
			if strings.HasSuffix(w, sfx) {
				f[6]++
				break
			}
		}
		if len(w) <= 3 {
			f[7]++
		}
		if strings.HasPrefix(w, "wh") || strings.Contains(w, "ck") {
			f[8]++
		}
	}
	f[3] /= n
	f[4] /= n
	f[5] /= n
	f[6] /= n
	f[7] /= n
	f[8] /= n

	f[9] = 1.0 - (float64(strings.Count(text, "q")+strings.Count(text, "x")) / chars * 20)
	f[10] = countSubstrings(text, []string{"ya", "ye", "yo"}) / n
	f[11] = float64(strings.Count(text, "'")) / n
	f[12] = countSubstrings(text, []string{"hai", "ache", "undi"}) / n
	return f
}

func countSubstrings(text string, subs []string) float64 {
	var c int
	for _, s := range subs {
		c += strings.Count(text, s)
	}
	return float64(c)
}

package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Detection is the result of statistical language identification.
type Detection struct {
	Language   string  // ISO 639-1 code when available, else 639-3, else "unknown"
	Confidence float64 // 0..1
}

// Detector identifies the language of a text using trigram statistics.
// Empty or unrecognizable input yields "unknown" with zero confidence rather
// than an error.
type Detector struct{}

// NewDetector creates a language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the most likely language and a confidence in [0,1].
func (d *Detector) Detect(text string) Detection {
	if strings.TrimSpace(text) == "" {
		return Detection{Language: "unknown", Confidence: 0}
	}
	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" {
		code = info.Lang.Iso6393()
	}
	if code == "" || info.Confidence <= 0 {
		return Detection{Language: "unknown", Confidence: 0}
	}
	return Detection{Language: code, Confidence: info.Confidence}
}

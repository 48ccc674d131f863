package embedding

import (
	"context"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/bazaarlabs/khoj/pkg/utils"
)

// MockEmbedder is a deterministic embedder for tests and development. Each
// token contributes a hash-derived direction, so texts sharing tokens land
// near each other. Image bytes that decode as UTF-8 are treated as a caption
// and share the token geometry, which emulates the joint image-text space.
type MockEmbedder struct {
	dimensions int
}

// NewMockEmbedder returns an embedder producing deterministic embeddings of
// the given dimensions.
func NewMockEmbedder(dimensions int) *MockEmbedder {
	if dimensions <= 0 {
		dimensions = 768
	}
	return &MockEmbedder{dimensions: dimensions}
}

// EmbedText returns a deterministic unit vector built from token hashes.
// Hashing is case-insensitive so "iPhone" and "iphone" share geometry.
func (e *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	emb := make([]float32, e.dimensions)
	words := SplitWords(text)
	for _, word := range words {
		h := HashString(strings.ToLower(word))
		for i := 0; i < e.dimensions; i++ {
			emb[i] += float32(math.Sin(float64(h*(i+1))) * 0.1)
		}
	}
	if len(words) == 0 {
		emb[0] = 1
	}
	utils.NormalizeL2(emb)
	return emb, nil
}

// EmbedImage embeds image bytes. UTF-8 payloads are embedded as captions.
func (e *MockEmbedder) EmbedImage(ctx context.Context, image []byte) ([]float32, error) {
	if utf8.Valid(image) {
		return e.EmbedText(ctx, string(image))
	}
	emb := make([]float32, e.dimensions)
	h := 0
	for _, b := range image {
		h = 31*h + int(b)
	}
	if h < 0 {
		h = -h
	}
	for i := 0; i < e.dimensions; i++ {
		emb[i] = float32(math.Sin(float64(h*(i+1)))*0.1 + 0.01)
	}
	utils.NormalizeL2(emb)
	return emb, nil
}

// Dimensions returns the embedding dimension.
func (e *MockEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op for MockEmbedder.
func (e *MockEmbedder) Close() error {
	return nil
}

// SplitWords splits text on whitespace and returns non-empty words.
func SplitWords(text string) []string {
	var words []string
	word := ""
	for _, r := range text {
		if r == ' ' || r == '\n' || r == '\t' {
			if word != "" {
				words = append(words, word)
				word = ""
			}
		} else {
			word += string(r)
		}
	}
	if word != "" {
		words = append(words, word)
	}
	return words
}

// HashString returns a deterministic hash for use as a simple token ID.
func HashString(s string) int {
	h := 0
	for _, c := range s {
		h = 31*h + int(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}

// Package embedding produces vectors in a joint image-text space so that
// cosine similarity between a text query and an image-derived product vector
// is meaningful.
package embedding

import (
	"context"
	"errors"
)

// ErrModelUnavailable means the embedding model cannot serve the request.
// There is deliberately no fallback: an approximate or zero vector would
// silently corrupt every downstream ranking.
var ErrModelUnavailable = errors.New("embedding model unavailable")

// Embedder produces L2-normalized vectors for text and images in one space.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	EmbedImage(ctx context.Context, image []byte) ([]float32, error)
	Dimensions() int
	Close() error
}

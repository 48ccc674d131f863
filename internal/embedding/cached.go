package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/bazaarlabs/khoj/internal/cache"
)

// CachedEmbedder wraps an Embedder with an LRU cache keyed by a hash of
// (model identity, input kind, input bytes), so a model swap never serves
// stale vectors.
type CachedEmbedder struct {
	inner   Embedder
	modelID string
	cache   *cache.Cache[[]float32]
}

// NewCachedEmbedder wraps inner with a cache of the given size.
func NewCachedEmbedder(inner Embedder, modelID string, cacheSize int) *CachedEmbedder {
	return &CachedEmbedder{
		inner:   inner,
		modelID: modelID,
		cache:   cache.New[[]float32]("embedding", cacheSize),
	}
}

// EmbedText returns the cached vector when available.
func (e *CachedEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vec, _, err := e.EmbedTextCached(ctx, text)
	return vec, err
}

// EmbedTextCached is EmbedText plus a flag reporting whether the call was
// served from cache, for response metadata.
func (e *CachedEmbedder) EmbedTextCached(ctx context.Context, text string) ([]float32, bool, error) {
	key := e.key("text", []byte(text))
	if vec, ok := e.cache.Get(key); ok {
		return vec, true, nil
	}
	vec, err := e.inner.EmbedText(ctx, text)
	if err != nil {
		return nil, false, err
	}
	e.cache.Set(key, vec)
	return vec, false, nil
}

// EmbedImage returns the cached vector when available.
func (e *CachedEmbedder) EmbedImage(ctx context.Context, image []byte) ([]float32, error) {
	vec, _, err := e.EmbedImageCached(ctx, image)
	return vec, err
}

// EmbedImageCached is EmbedImage plus a cache-hit flag.
func (e *CachedEmbedder) EmbedImageCached(ctx context.Context, image []byte) ([]float32, bool, error) {
	key := e.key("image", image)
	if vec, ok := e.cache.Get(key); ok {
		return vec, true, nil
	}
	vec, err := e.inner.EmbedImage(ctx, image)
	if err != nil {
		return nil, false, err
	}
	e.cache.Set(key, vec)
	return vec, false, nil
}

func (e *CachedEmbedder) key(kind string, input []byte) string {
	h := sha256.New()
	h.Write([]byte(e.modelID))
	h.Write([]byte{0})
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write(input)
	return hex.EncodeToString(h.Sum(nil))
}

// Dimensions returns the embedding dimension of the wrapped embedder.
func (e *CachedEmbedder) Dimensions() int {
	return e.inner.Dimensions()
}

// Close closes the wrapped embedder.
func (e *CachedEmbedder) Close() error {
	return e.inner.Close()
}

// CacheStats returns embedding cache hits and misses.
func (e *CachedEmbedder) CacheStats() (hits, misses uint64) {
	return e.cache.Stats()
}

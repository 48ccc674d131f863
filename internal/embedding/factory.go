package embedding

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bazaarlabs/khoj/internal/config"
)

// NewFromConfig builds the configured embedding provider wrapped in the
// LRU cache layer.
func NewFromConfig(cfg config.EmbeddingConfig, logger *zap.Logger) (Embedder, error) {
	var inner Embedder
	switch cfg.Provider {
	case "http":
		inner = NewHTTPEmbedder(HTTPConfig{
			Endpoint:   cfg.Endpoint,
			ModelID:    cfg.ModelID,
			Dimensions: cfg.Dimensions,
			Timeout:    time.Duration(cfg.TimeoutMS) * time.Millisecond,
			Logger:     logger,
		})
	case "onnx":
		onnx, err := NewONNXEmbedder(cfg.ModelPath, cfg.Dimensions, cfg.MaxTokens)
		if err != nil {
			return nil, err
		}
		inner = onnx
	case "mock":
		inner = NewMockEmbedder(cfg.Dimensions)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", cfg.Provider)
	}
	return NewCachedEmbedder(inner, cfg.ModelID, cfg.CacheSize), nil
}

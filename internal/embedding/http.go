package embedding

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bazaarlabs/khoj/internal/metrics"
	"github.com/bazaarlabs/khoj/pkg/utils"
)

// HTTPEmbedder calls a remote joint image-text embedding service (CLIP-style).
type HTTPEmbedder struct {
	endpoint   string
	modelID    string
	dimensions int
	client     *http.Client
	logger     *zap.Logger
}

// HTTPConfig holds the embedding service settings.
type HTTPConfig struct {
	Endpoint   string
	ModelID    string
	Dimensions int
	Timeout    time.Duration
	Logger     *zap.Logger
}

// NewHTTPEmbedder creates a remote embedding provider.
func NewHTTPEmbedder(cfg HTTPConfig) *HTTPEmbedder {
	return &HTTPEmbedder{
		endpoint:   cfg.Endpoint,
		modelID:    cfg.ModelID,
		dimensions: cfg.Dimensions,
		client:     &http.Client{Timeout: cfg.Timeout},
		logger:     cfg.Logger,
	}
}

type embedRequest struct {
	Model string `json:"model"`
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"` // base64
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// EmbedText returns the text embedding. Transport failures surface as
// ErrModelUnavailable.
func (e *HTTPEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return e.call(ctx, "text", embedRequest{Model: e.modelID, Text: text})
}

// EmbedImage returns the image embedding in the same space.
func (e *HTTPEmbedder) EmbedImage(ctx context.Context, image []byte) ([]float32, error) {
	return e.call(ctx, "image", embedRequest{
		Model: e.modelID,
		Image: base64.StdEncoding.EncodeToString(image),
	})
}

func (e *HTTPEmbedder) call(ctx context.Context, kind string, payload embedRequest) ([]float32, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal embed request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := e.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(kind, "error").Inc()
		if e.logger != nil {
			e.logger.Error("embedding request failed", zap.String("kind", kind), zap.Error(err))
		}
		return nil, fmt.Errorf("embed %s: %v: %w", kind, err, ErrModelUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.EmbeddingRequestsTotal.WithLabelValues(kind, "error").Inc()
		return nil, fmt.Errorf("embed %s: status %d: %w", kind, resp.StatusCode, ErrModelUnavailable)
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(kind, "error").Inc()
		return nil, fmt.Errorf("decode embed response: %v: %w", err, ErrModelUnavailable)
	}
	if len(out.Embedding) != e.dimensions {
		metrics.EmbeddingRequestsTotal.WithLabelValues(kind, "error").Inc()
		return nil, fmt.Errorf("embed %s: got %d dimensions, want %d: %w",
			kind, len(out.Embedding), e.dimensions, ErrModelUnavailable)
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues(kind, "success").Inc()
	metrics.StageDuration.WithLabelValues("embed_" + kind).Observe(duration.Seconds())

	utils.NormalizeL2(out.Embedding)
	return out.Embedding, nil
}

// Dimensions returns the embedding dimension.
func (e *HTTPEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op for HTTPEmbedder.
func (e *HTTPEmbedder) Close() error {
	return nil
}

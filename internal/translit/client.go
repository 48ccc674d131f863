// Package translit converts romanized text to native script via an external
// sequence-to-sequence service. Transliteration is an accuracy enhancement,
// never a correctness requirement: on any failure the original text passes
// through unchanged.
package translit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bazaarlabs/khoj/internal/cache"
	"github.com/bazaarlabs/khoj/internal/metrics"
)

// Result is the outcome of a transliteration attempt. Fallback=true means the
// service was unreachable or timed out and Native carries the original text.
type Result struct {
	Native   string
	Fallback bool
	Reason   string
	CacheHit bool
}

// Client calls the transliteration service with a hard timeout and caches
// successful results keyed by (text, target language).
type Client struct {
	endpoint string
	client   *http.Client
	cache    *cache.Cache[string]
	logger   *zap.Logger
}

// NewClient creates a transliteration client. An empty endpoint disables the
// service: every call falls back immediately.
func NewClient(endpoint string, timeout time.Duration, cacheSize int, logger *zap.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		cache:    cache.New[string]("translit", cacheSize),
		logger:   logger,
	}
}

type translitRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

type translitResponse struct {
	Native string `json:"native"`
}

// Transliterate converts text to the native script of targetLang. A cache hit
// bypasses the network entirely.
func (c *Client) Transliterate(ctx context.Context, text, targetLang string) Result {
	if c.endpoint == "" {
		return Result{Native: text, Fallback: true, Reason: "disabled"}
	}

	key := text + "|" + targetLang
	if native, ok := c.cache.Get(key); ok {
		metrics.TranslitTotal.WithLabelValues("cache_hit").Inc()
		return Result{Native: native, CacheHit: true}
	}

	native, err := c.call(ctx, text, targetLang)
	if err != nil {
		metrics.TranslitTotal.WithLabelValues("fallback").Inc()
		if c.logger != nil {
			c.logger.Warn("transliteration fell back to original text",
				zap.String("target_lang", targetLang), zap.Error(err))
		}
		return Result{Native: text, Fallback: true, Reason: err.Error()}
	}

	metrics.TranslitTotal.WithLabelValues("success").Inc()
	c.cache.Set(key, native)
	return Result{Native: native}
}

func (c *Client) call(ctx context.Context, text, targetLang string) (string, error) {
	body, err := json.Marshal(translitRequest{Text: text, TargetLang: targetLang})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transliteration call: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transliteration service returned %d", resp.StatusCode)
	}

	var out translitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.Native == "" {
		return "", fmt.Errorf("empty transliteration result")
	}
	return out.Native, nil
}

// CacheStats returns transliteration cache hits and misses.
func (c *Client) CacheStats() (hits, misses uint64) {
	return c.cache.Stats()
}

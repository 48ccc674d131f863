// Package normalize provides text cleanup and shortened-URL expansion, the
// first stage of the query pipeline. It never fails: on any network problem
// the original string is treated as opaque text.
package normalize

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/bazaarlabs/khoj/internal/cache"
)

// Normalizer cleans raw query text and expands URL-like tokens.
type Normalizer struct {
	resolver *URLResolver
	cache    *cache.Cache[string]
	logger   *zap.Logger
}

// NewNormalizer creates a normalizer. resolver may be nil to disable URL expansion.
func NewNormalizer(resolver *URLResolver, cacheSize int, logger *zap.Logger) *Normalizer {
	return &Normalizer{
		resolver: resolver,
		cache:    cache.New[string]("url", cacheSize),
		logger:   logger,
	}
}

// Normalize lowercases, collapses whitespace, strips control characters, and
// expands any URL tokens to the page title-ish slug of their final location.
// The second return reports whether a URL expansion was served from cache,
// for response metadata.
func (n *Normalizer) Normalize(text string) (string, bool) {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	cacheHit := false
	for _, f := range fields {
		if isURL(f) {
			expanded, hit := n.expandURL(f)
			f = expanded
			cacheHit = cacheHit || hit
		}
		cleaned := cleanToken(f)
		if cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return strings.Join(out, " "), cacheHit
}

// expandURL resolves a (possibly shortened) URL to a searchable string.
// Resolution results are cached by the original URL; failures fall back to
// the slug of the URL as given.
func (n *Normalizer) expandURL(raw string) (string, bool) {
	if cached, ok := n.cache.Get(raw); ok {
		return cached, true
	}
	expanded := urlToText(raw)
	if n.resolver != nil {
		if final, err := n.resolver.Resolve(raw); err == nil {
			expanded = urlToText(final)
		} else if n.logger != nil {
			n.logger.Debug("url resolution failed, using original", zap.String("url", raw), zap.Error(err))
		}
	}
	n.cache.Set(raw, expanded)
	return expanded, false
}

// CacheStats returns URL-resolution cache hits and misses.
func (n *Normalizer) CacheStats() (hits, misses uint64) {
	return n.cache.Stats()
}

// cleanToken lowercases a token and drops control characters and zero-width
// marks that commonly ride along with copy-pasted text.
func cleanToken(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsControl(r) || r == '\u200b' || r == '\u200c' || r == '\u200d' || r == '\ufeff' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// urlToText converts a URL into space-separated search terms from its path,
// which is where marketplaces put the product slug.
func urlToText(rawURL string) string {
	s := rawURL
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	// drop the host, keep the path
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[i+1:]
	} else {
		s = ""
	}
	replacer := strings.NewReplacer("/", " ", "-", " ", "_", " ", "+", " ", "%20", " ")
	s = replacer.Replace(s)
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

package search

import (
	"context"
	"strings"
	"time"

	"github.com/bazaarlabs/khoj/internal/language"
	"github.com/bazaarlabs/khoj/internal/metrics"
	"github.com/bazaarlabs/khoj/internal/models"
)

// preprocessText runs the full text stage chain and fills a Query. Every
// stage is total: garbage input flows through as unknown language with zero
// confidence, it never aborts the request.
func (p *Pipeline) preprocessText(ctx context.Context, raw string, meta *models.PipelineMeta) *models.Query {
	start := time.Now()
	q := &models.Query{Raw: raw}

	normalized, urlCacheHit := p.normalizer.Normalize(raw)
	q.Normalized = normalized
	if urlCacheHit {
		meta.CacheHits["url"] = true
	}
	q.Corrected, q.AppliedRewrites = p.corrector.Correct(q.Normalized)
	q.Tokens = language.Tokenize(q.Corrected)
	q.Script = language.DetectScript(q.Corrected)

	detection := p.languages.Detect(q.Corrected)
	q.Language = detection.Language
	q.LangConfidence = detection.Confidence

	if q.Script == models.ScriptLatin {
		mix := p.codemix.Detect(q.Tokens, q.Language)
		if mix.IsRomanized {
			q.CodeMixed = true
			q.CodeMixTarget = mix.TargetLang
			q.Language = mix.TargetLang
			p.transliterate(ctx, q, meta)
		}
	}

	q.ExpandedTerms = p.expander.Expand(q.Tokens)
	q.Features = p.extractor.Extract(q.Corrected)

	metrics.StageDuration.WithLabelValues("preprocess").Observe(time.Since(start).Seconds())
	return q
}

// transliterate converts the romanized tokens to native script one token at
// a time, so ASCII brand names, model numbers, and dictionary terms survive
// verbatim while the vernacular segment is substituted.
func (p *Pipeline) transliterate(ctx context.Context, q *models.Query, meta *models.PipelineMeta) {
	out := make([]string, len(q.Tokens))
	anyNative := false
	anyCacheHit := false
	for i, tok := range q.Tokens {
		if p.preserveToken(tok) {
			out[i] = tok
			continue
		}
		res := p.translit.Transliterate(ctx, tok, q.CodeMixTarget)
		out[i] = res.Native
		if !res.Fallback {
			anyNative = true
		}
		if res.CacheHit {
			anyCacheHit = true
		}
	}
	if anyNative {
		q.Transliterated = strings.Join(out, " ")
	}
	meta.WasTransliterated = anyNative
	if anyCacheHit {
		meta.CacheHits["translit"] = true
	}
}

// preserveToken reports whether a token must stay in Latin script: catalog
// vocabulary (brands, models, product words) and anything carrying digits.
func (p *Pipeline) preserveToken(tok string) bool {
	if p.corrector.InDictionary(tok) {
		return true
	}
	for _, r := range tok {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

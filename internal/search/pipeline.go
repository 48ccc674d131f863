// Package search orchestrates the query preprocessing and hybrid ranking
// pipeline.
package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bazaarlabs/khoj/internal/catalog"
	"github.com/bazaarlabs/khoj/internal/category"
	"github.com/bazaarlabs/khoj/internal/config"
	"github.com/bazaarlabs/khoj/internal/embedding"
	"github.com/bazaarlabs/khoj/internal/expand"
	"github.com/bazaarlabs/khoj/internal/features"
	"github.com/bazaarlabs/khoj/internal/keyword"
	"github.com/bazaarlabs/khoj/internal/language"
	"github.com/bazaarlabs/khoj/internal/metrics"
	"github.com/bazaarlabs/khoj/internal/models"
	"github.com/bazaarlabs/khoj/internal/normalize"
	"github.com/bazaarlabs/khoj/internal/scoring"
	"github.com/bazaarlabs/khoj/internal/spell"
	"github.com/bazaarlabs/khoj/internal/translit"
	"github.com/bazaarlabs/khoj/internal/vector"
	"github.com/bazaarlabs/khoj/pkg/utils"
)

// Pipeline wires the preprocessing stages to retrieval and scoring. All
// stage state is read-only after construction; the injected caches are the
// only shared mutable state.
type Pipeline struct {
	normalizer *normalize.Normalizer
	corrector  *spell.Corrector
	languages  *language.Detector
	codemix    *language.CodeMixDetector
	translit   *translit.Client
	expander   *expand.Expander
	extractor  *features.Extractor
	embedder   embedding.Embedder
	vectors    vector.Index
	names      keyword.Index
	store      catalog.Store
	categories *category.Detector
	scorer     *scoring.HybridScorer
	search     config.SearchConfig
	logger     *zap.Logger
}

// Deps collects the pipeline's injected dependencies.
type Deps struct {
	Normalizer *normalize.Normalizer
	Corrector  *spell.Corrector
	Languages  *language.Detector
	CodeMix    *language.CodeMixDetector
	Translit   *translit.Client
	Expander   *expand.Expander
	Extractor  *features.Extractor
	Embedder   embedding.Embedder
	Vectors    vector.Index
	Names      keyword.Index
	Store      catalog.Store
	Categories *category.Detector
	Scorer     *scoring.HybridScorer
	Search     config.SearchConfig
	Logger     *zap.Logger
}

// NewPipeline creates the pipeline.
func NewPipeline(d Deps) *Pipeline {
	return &Pipeline{
		normalizer: d.Normalizer,
		corrector:  d.Corrector,
		languages:  d.Languages,
		codemix:    d.CodeMix,
		translit:   d.Translit,
		expander:   d.Expander,
		extractor:  d.Extractor,
		embedder:   d.Embedder,
		vectors:    d.Vectors,
		names:      d.Names,
		store:      d.Store,
		categories: d.Categories,
		scorer:     d.Scorer,
		search:     d.Search,
		logger:     d.Logger,
	}
}

// Search runs the full pipeline for one request.
func (p *Pipeline) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	start := time.Now()
	if err := req.Validate(); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%v: %w", err, ErrEmptyQuery)
	}

	meta := models.PipelineMeta{
		RequestID: uuid.New().String(),
		CacheHits: make(map[string]bool),
	}

	var q *models.Query
	if req.Text != "" {
		q = p.preprocessText(ctx, req.Text, &meta)
		meta.DetectedLanguage = q.Language
		meta.Script = q.Script
		meta.CodeMixed = q.CodeMixed
	} else {
		q = &models.Query{ImageData: req.ImageData}
		meta.DetectedLanguage = "unknown"
		meta.Script = models.ScriptUnknown
	}
	q.ImageData = req.ImageData

	queryVec, err := p.embedQuery(ctx, q, &meta)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	filter := p.categoryFilter(req.CategoryHint)
	vectorResults, keywordScores, err := p.retrieve(ctx, q, queryVec, filter)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	detected := p.detectCategory(req.CategoryHint, q, vectorResults)
	meta.DetectedCategory = string(detected)

	results, err := p.rank(ctx, q, detected, vectorResults, keywordScores, req.TopK)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	meta.TotalLatencyMS = time.Since(start).Milliseconds()
	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	p.logger.Debug("search complete",
		zap.String("request_id", meta.RequestID),
		zap.String("language", meta.DetectedLanguage),
		zap.String("category", meta.DetectedCategory),
		zap.Int("results", len(results)),
		zap.Int64("latency_ms", meta.TotalLatencyMS))

	return &models.SearchResponse{Results: results, Meta: meta}, nil
}

// hitReportingEmbedder is implemented by the cached embedder decorator; the
// pipeline uses it to surface cache hits in response metadata.
type hitReportingEmbedder interface {
	EmbedTextCached(ctx context.Context, text string) ([]float32, bool, error)
	EmbedImageCached(ctx context.Context, image []byte) ([]float32, bool, error)
}

// embedQuery produces the query vector: text, image, or the renormalized
// mean of both when text augments an image.
func (p *Pipeline) embedQuery(ctx context.Context, q *models.Query, meta *models.PipelineMeta) ([]float32, error) {
	reporter, _ := p.embedder.(hitReportingEmbedder)
	var textVec, imageVec []float32
	if text := q.SearchText(); text != "" {
		var v []float32
		var hit bool
		var err error
		if reporter != nil {
			v, hit, err = reporter.EmbedTextCached(ctx, text)
		} else {
			v, err = p.embedder.EmbedText(ctx, text)
		}
		if err != nil {
			return nil, fmt.Errorf("embed query text: %w", err)
		}
		if hit {
			meta.CacheHits["embed"] = true
		}
		textVec = v
	}
	if len(q.ImageData) > 0 {
		var v []float32
		var hit bool
		var err error
		if reporter != nil {
			v, hit, err = reporter.EmbedImageCached(ctx, q.ImageData)
		} else {
			v, err = p.embedder.EmbedImage(ctx, q.ImageData)
		}
		if err != nil {
			return nil, fmt.Errorf("embed query image: %w", err)
		}
		if hit {
			meta.CacheHits["embed"] = true
		}
		imageVec = v
	}
	switch {
	case textVec != nil && imageVec != nil:
		return utils.MeanVectors(textVec, imageVec), nil
	case imageVec != nil:
		return imageVec, nil
	default:
		return textVec, nil
	}
}

// retrieve runs vector search and keyword scoring in parallel. The vector
// query carries its own deadline; a slow index cancels the request rather
// than stalling it.
func (p *Pipeline) retrieve(ctx context.Context, q *models.Query, queryVec []float32, filter *vector.Filter) ([]*vector.Result, map[string]float64, error) {
	var (
		vectorResults []*vector.Result
		keywordScores = make(map[string]float64)
		errChan       = make(chan error, 2)
		wg            sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		start := time.Now()
		vctx, cancel := context.WithTimeout(ctx, time.Duration(p.search.VectorTimeoutMS)*time.Millisecond)
		defer cancel()
		results, err := p.vectors.Search(vctx, queryVec, p.search.TopKCandidates, filter)
		if err != nil {
			errChan <- fmt.Errorf("vector search failed: %w", err)
			return
		}
		vectorResults = results
		metrics.StageDuration.WithLabelValues("vector_search").Observe(time.Since(start).Seconds())
	}()

	if text := keywordQuery(q); text != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			results, err := p.names.Scores(ctx, text, p.search.TopKCandidates)
			if err != nil {
				errChan <- fmt.Errorf("keyword search failed: %w", err)
				return
			}
			for _, r := range results {
				keywordScores[r.ProductID] = r.Score
			}
			metrics.StageDuration.WithLabelValues("keyword_search").Observe(time.Since(start).Seconds())
		}()
	}

	wg.Wait()
	close(errChan)
	for err := range errChan {
		if err != nil {
			return nil, nil, err
		}
	}
	return vectorResults, keywordScores, nil
}

// keywordQuery builds the lexical query from the expanded terms, falling
// back to the search text for native-script queries where expansion found
// nothing.
func keywordQuery(q *models.Query) string {
	if len(q.ExpandedTerms) > 0 {
		return strings.Join(q.ExpandedTerms, " ")
	}
	return q.SearchText()
}

// categoryFilter turns an explicit request hint into an index filter.
func (p *Pipeline) categoryFilter(hint string) *vector.Filter {
	if hint == "" {
		return nil
	}
	c := category.Normalize(hint)
	if c == category.Unknown {
		return nil
	}
	return &vector.Filter{Category: string(c)}
}

// detectCategory runs the three-tier detector unless the caller pinned a
// category explicitly.
func (p *Pipeline) detectCategory(hint string, q *models.Query, vectorResults []*vector.Result) category.Category {
	if hint != "" {
		if c := category.Normalize(hint); c != category.Unknown {
			return c
		}
	}
	in := &category.DetectionInput{Tokens: q.Tokens}
	for _, r := range vectorResults {
		in.Candidates = append(in.Candidates, category.Candidate{
			ProductID: r.ProductID,
			Category:  category.Category(r.Category),
			Score:     r.Score,
		})
	}
	return p.categories.Detect(in)
}

// rank resolves the candidate products and applies hybrid scoring.
func (p *Pipeline) rank(ctx context.Context, q *models.Query, detected category.Category, vectorResults []*vector.Result, keywordScores map[string]float64, topK int) ([]*models.ScoredCandidate, error) {
	ids := make([]string, len(vectorResults))
	for i, r := range vectorResults {
		ids[i] = r.ProductID
	}
	products, err := p.store.Resolve(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}

	candidates := make([]scoring.Candidate, 0, len(vectorResults))
	for _, r := range vectorResults {
		product := products[r.ProductID]
		name := ""
		if product != nil {
			name = product.Name
		}
		candidates = append(candidates, scoring.Candidate{
			ProductID: r.ProductID,
			Name:      name,
			Category:  category.Category(r.Category),
			Visual:    r.Score,
			Keyword:   keywordScores[r.ProductID],
			Product:   product,
		})
	}

	ranked := p.scorer.Score(candidates, scoring.QueryContext{
		Tokens:           q.Tokens,
		Brands:           q.Features["brand"],
		DetectedCategory: detected,
	})
	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked, nil
}

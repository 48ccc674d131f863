package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/bazaarlabs/khoj/internal/catalog"
	"github.com/bazaarlabs/khoj/internal/category"
	"github.com/bazaarlabs/khoj/internal/config"
	"github.com/bazaarlabs/khoj/internal/embedding"
	"github.com/bazaarlabs/khoj/internal/expand"
	"github.com/bazaarlabs/khoj/internal/features"
	"github.com/bazaarlabs/khoj/internal/keyword"
	"github.com/bazaarlabs/khoj/internal/language"
	"github.com/bazaarlabs/khoj/internal/models"
	"github.com/bazaarlabs/khoj/internal/normalize"
	"github.com/bazaarlabs/khoj/internal/scoring"
	"github.com/bazaarlabs/khoj/internal/search"
	"github.com/bazaarlabs/khoj/internal/spell"
	"github.com/bazaarlabs/khoj/internal/translit"
	"github.com/bazaarlabs/khoj/internal/vector"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := zap.NewNop()
	ctx := context.Background()
	dims := 32

	embedder := embedding.NewMockEmbedder(dims)
	vectors, err := vector.NewMemoryIndex(dims)
	if err != nil {
		t.Fatalf("NewMemoryIndex: %v", err)
	}
	names, err := keyword.NewBleveIndex("")
	if err != nil {
		t.Fatalf("NewBleveIndex: %v", err)
	}
	t.Cleanup(func() { names.Close() })
	store, err := catalog.NewSQLiteStore(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	products := []*models.ProductRecord{
		{ID: "p1", Name: "Apple iPhone 15", Category: "Smartphones"},
		{ID: "p2", Name: "Nike Running Shoes", Category: "Footwear"},
	}
	for _, p := range products {
		vec, err := embedder.EmbedText(ctx, p.Name)
		if err != nil {
			t.Fatalf("embed: %v", err)
		}
		p.Embedding = vec
		if err := store.Upsert(ctx, p); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
		if err := names.IndexProduct(ctx, p); err != nil {
			t.Fatalf("IndexProduct: %v", err)
		}
		if err := vectors.Add(ctx, []vector.Entry{{ProductID: p.ID, Category: p.Category, Vector: vec}}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	pipeline := search.NewPipeline(search.Deps{
		Normalizer: normalize.NewNormalizer(normalize.NewURLResolver(2, 200*time.Millisecond), 32, logger),
		Corrector:  spell.NewCorrector(),
		Languages:  language.NewDetector(),
		CodeMix:    language.NewCodeMixDetector(),
		Translit:   translit.NewClient("", time.Second, 32, logger),
		Expander:   expand.NewExpander(3),
		Extractor:  features.NewExtractor(),
		Embedder:   embedding.NewCachedEmbedder(embedder, "mock", 32),
		Vectors:    vectors,
		Names:      names,
		Store:      store,
		Categories: category.NewDetector(2, 5),
		Scorer:     scoring.NewHybridScorer(scoring.DefaultWeights()),
		Search:     config.SearchConfig{TopKCandidates: 50, DefaultLimit: 10, MaxLimit: 100, VectorTimeoutMS: 1000},
		Logger:     logger,
	})

	return NewServer(pipeline, store, &config.ServerConfig{Host: "127.0.0.1", Port: 0}, logger)
}

func TestHandleSearch(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	body, _ := json.Marshal(map[string]interface{}{"text": "iphone 15"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp models.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) == 0 {
		t.Fatal("no results")
	}
	if resp.Results[0].ProductID != "p1" {
		t.Errorf("top result = %s, want p1", resp.Results[0].ProductID)
	}
}

func TestHandleSearchEmptyBody(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleSearchBadBase64(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search",
		bytes.NewReader([]byte(`{"image": "not-base64!!!"}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleGetProduct(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/p1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var p models.ProductRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Name != "Apple iPhone 15" {
		t.Errorf("name = %s", p.Name)
	}
}

func TestHandleGetProductMissing(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

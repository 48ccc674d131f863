package keyword

import (
	"context"
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"

	"github.com/bazaarlabs/khoj/internal/models"
)

// BleveIndex implements Index using Bleve.
type BleveIndex struct {
	index bleve.Index
}

type productDoc struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// NewBleveIndex creates or opens a Bleve index at path. An empty path
// builds an in-memory index, used in tests.
// If the path already exists, the existing index is opened and reused so
// that catalog sync does not re-index unchanged products. If you change
// the mapping in code, remove the index directory to force a full re-index.
func NewBleveIndex(path string) (*BleveIndex, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	nameFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so "earphones"
	// does not silently match via a stem shared with unrelated words.
	nameFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)
	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	docMapping.AddFieldMappingsAt("id", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("category", keywordFieldMapping)
	im.AddDocumentMapping("product", docMapping)
	im.DefaultType = "product"
	im.DefaultMapping = docMapping

	if path == "" {
		index, err := bleve.NewMemOnly(im)
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory Bleve index: %w", err)
		}
		return &BleveIndex{index: index}, nil
	}

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open Bleve index: %w", openErr)
		}
		return &BleveIndex{index: index}, nil
	}

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// IndexProduct indexes a product by ID.
func (b *BleveIndex) IndexProduct(ctx context.Context, product *models.ProductRecord) error {
	return b.index.Index(product.ID, productDoc{
		ID:       product.ID,
		Name:     product.Name,
		Category: string(product.Category),
	})
}

// Scores runs a match query over product names and max-normalizes the
// scores so the best hit is 1.0. BM25 scores are corpus-relative and
// unbounded; normalizing per request makes them comparable to the
// similarity component of the final score.
func (b *BleveIndex) Scores(ctx context.Context, query string, limit int) ([]*Result, error) {
	q := bleve.NewMatchQuery(query)
	q.SetField("name")
	search := bleve.NewSearchRequest(q)
	search.Size = limit
	results, err := b.index.Search(search)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}

	var maxScore float64
	for _, hit := range results.Hits {
		if hit.Score > maxScore {
			maxScore = hit.Score
		}
	}
	out := make([]*Result, len(results.Hits))
	for i, hit := range results.Hits {
		score := hit.Score
		if maxScore > 0 {
			score = hit.Score / maxScore
		}
		out[i] = &Result{ProductID: hit.ID, Score: score}
	}
	return out, nil
}

// Delete removes a product from the index.
func (b *BleveIndex) Delete(ctx context.Context, id string) error {
	return b.index.Delete(id)
}

// AllIDs returns every indexed product ID, so catalog sync can drop
// products that vanished from the store.
func (b *BleveIndex) AllIDs(ctx context.Context) ([]string, error) {
	count, err := b.index.DocCount()
	if err != nil {
		return nil, fmt.Errorf("Bleve doc count failed: %w", err)
	}
	if count == 0 {
		return nil, nil
	}
	search := bleve.NewSearchRequest(bleve.NewMatchAllQuery())
	search.Size = int(count)
	results, err := b.index.Search(search)
	if err != nil {
		return nil, fmt.Errorf("Bleve id scan failed: %w", err)
	}
	ids := make([]string, len(results.Hits))
	for i, hit := range results.Hits {
		ids[i] = hit.ID
	}
	return ids, nil
}

// DocCount returns the total number of products in the index.
func (b *BleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

// Close closes the Bleve index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}

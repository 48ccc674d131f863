// Package keyword provides lexical search over product names.
package keyword

import (
	"context"

	"github.com/bazaarlabs/khoj/internal/models"
)

// Index defines keyword search operations over the product catalog.
type Index interface {
	IndexProduct(ctx context.Context, product *models.ProductRecord) error
	// Scores returns up to limit products matching the query, with scores
	// max-normalized to [0, 1] within the result set.
	Scores(ctx context.Context, query string, limit int) ([]*Result, error)
	Delete(ctx context.Context, id string) error
	// AllIDs returns every product ID currently in the index.
	AllIDs(ctx context.Context) ([]string, error)
	DocCount() (uint64, error)
	Close() error
}

// Result is a single keyword search hit.
type Result struct {
	ProductID string
	Score     float64
}

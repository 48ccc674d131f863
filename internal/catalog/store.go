// Package catalog persists the product catalog and feeds the search indexes.
package catalog

import (
	"context"

	"github.com/bazaarlabs/khoj/internal/models"
)

// Store defines product persistence operations.
type Store interface {
	Upsert(ctx context.Context, product *models.ProductRecord) error
	Get(ctx context.Context, id string) (*models.ProductRecord, error)
	// Resolve loads multiple products by ID; missing IDs are simply absent
	// from the returned map.
	Resolve(ctx context.Context, ids []string) (map[string]*models.ProductRecord, error)
	All(ctx context.Context) ([]*models.ProductRecord, error)
	// AllEmbeddings returns the slim embedding view for index building.
	// An empty category returns everything.
	AllEmbeddings(ctx context.Context, category string) ([]models.ProductEmbedding, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Close() error
}

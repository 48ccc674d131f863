package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bazaarlabs/khoj/internal/keyword"
	"github.com/bazaarlabs/khoj/internal/vector"
)

// Loader feeds the vector and keyword indexes from the store, at startup
// and whenever the catalog changes.
type Loader struct {
	store   Store
	vectors vector.Index
	names   keyword.Index
	logger  *zap.Logger
}

// NewLoader wires the store to its indexes.
func NewLoader(store Store, vectors vector.Index, names keyword.Index, logger *zap.Logger) *Loader {
	return &Loader{store: store, vectors: vectors, names: names, logger: logger}
}

// Reload rebuilds both indexes from the store. The vector index is emptied
// (everything it currently holds is removed) before refilling, and Bleve
// documents whose products vanished from the store are deleted, so a product
// removed from the catalog is never served from either index again.
func (l *Loader) Reload(ctx context.Context) error {
	embeddings, err := l.store.AllEmbeddings(ctx, "")
	if err != nil {
		return fmt.Errorf("load embeddings: %w", err)
	}
	entries := make([]vector.Entry, len(embeddings))
	for i, e := range embeddings {
		entries[i] = vector.Entry{ProductID: e.ProductID, Category: e.Category, Vector: e.Vector}
	}
	if err := l.vectors.Remove(ctx, l.vectors.IDs()); err != nil {
		return fmt.Errorf("clear vector index: %w", err)
	}
	if err := l.vectors.Add(ctx, entries); err != nil {
		return fmt.Errorf("fill vector index: %w", err)
	}

	products, err := l.store.All(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	current := make(map[string]bool, len(products))
	for _, p := range products {
		current[p.ID] = true
		if err := l.names.IndexProduct(ctx, p); err != nil {
			return fmt.Errorf("index product %s: %w", p.ID, err)
		}
	}

	indexed, err := l.names.AllIDs(ctx)
	if err != nil {
		return fmt.Errorf("scan keyword index: %w", err)
	}
	stale := 0
	for _, id := range indexed {
		if current[id] {
			continue
		}
		if err := l.names.Delete(ctx, id); err != nil {
			return fmt.Errorf("drop stale product %s: %w", id, err)
		}
		stale++
	}

	l.logger.Info("catalog loaded",
		zap.Int("products", len(products)),
		zap.Int("embeddings", len(embeddings)),
		zap.Int("stale_dropped", stale))
	return nil
}

// Package vector provides the product embedding index and similarity search.
package vector

import "context"

// Index defines vector storage and similarity search over product embeddings.
type Index interface {
	Add(ctx context.Context, entries []Entry) error
	Search(ctx context.Context, query []float32, k int, filter *Filter) ([]*Result, error)
	Remove(ctx context.Context, ids []string) error
	// IDs returns the product IDs currently held by the index.
	IDs() []string
	Save(path string) error
	Load(path string) error
	Size() int
	Close() error
}

// Entry is a product vector with the metadata needed for filter pushdown.
type Entry struct {
	ProductID string
	Category  string
	Vector    []float32
}

// Filter restricts a search to matching entries before ranking, so the
// caller gets k usable candidates instead of k-minus-filtered.
type Filter struct {
	Category string
}

// Result is a single similarity hit.
type Result struct {
	ProductID string
	Category  string
	Score     float64 // inner product; cosine similarity for normalized vectors
}

// Package models defines core data structures for products, queries, and search results.
package models

import "time"

// StoreListing is a single store's offer for a product.
type StoreListing struct {
	Store   string  `json:"store" db:"store"`
	Price   float64 `json:"price" db:"price"`
	InStock bool    `json:"in_stock" db:"in_stock"`
	URL     string  `json:"url,omitempty" db:"url"`
}

// ProductRecord is a catalog entity. The pipeline reads embeddings and category
// labels; it never mutates a record.
type ProductRecord struct {
	ID          string         `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Category    string         `json:"category" db:"category"`
	RawCategory string         `json:"raw_category,omitempty" db:"raw_category"`
	Embedding   []float32      `json:"-" db:"-"`
	Listings    []StoreListing `json:"listings,omitempty" db:"-"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// ProductEmbedding is the slim view used to build the vector index.
type ProductEmbedding struct {
	ProductID string
	Category  string
	Vector    []float32
}

package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bazaarlabs/khoj/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleProduct(id string) *models.ProductRecord {
	return &models.ProductRecord{
		ID:          id,
		Name:        "Apple iPhone 15 Pro",
		Category:    "Smartphones",
		RawCategory: "Mobiles & Tablets",
		Embedding:   []float32{0.6, 0.8, 0, 0},
		Listings: []models.StoreListing{
			{Store: "alpha", Price: 129999, InStock: true, URL: "https://alpha.example/p1"},
			{Store: "beta", Price: 131500, InStock: false},
		},
	}
}

func TestSQLiteUpsertAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, sampleProduct("p1")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	got, err := store.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Apple iPhone 15 Pro" || got.Category != "Smartphones" {
		t.Errorf("got %+v", got)
	}
	if len(got.Embedding) != 4 || got.Embedding[0] != 0.6 {
		t.Errorf("embedding round trip failed: %v", got.Embedding)
	}
	if len(got.Listings) != 2 {
		t.Fatalf("listings = %d, want 2", len(got.Listings))
	}
	// listingsFor orders by price
	if got.Listings[0].Store != "alpha" || got.Listings[0].URL == "" {
		t.Errorf("listings wrong: %+v", got.Listings)
	}
}

func TestSQLiteUpsertReplacesListings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := sampleProduct("p1")
	if err := store.Upsert(ctx, p); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	p.Name = "Apple iPhone 15 Pro Max"
	p.Listings = []models.StoreListing{{Store: "gamma", Price: 140000, InStock: true}}
	if err := store.Upsert(ctx, p); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	got, err := store.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Apple iPhone 15 Pro Max" {
		t.Errorf("name not updated: %s", got.Name)
	}
	if len(got.Listings) != 1 || got.Listings[0].Store != "gamma" {
		t.Errorf("listings not replaced: %+v", got.Listings)
	}
	count, _ := store.Count(ctx)
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestSQLiteResolve(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"p1", "p2", "p3"} {
		p := sampleProduct(id)
		if err := store.Upsert(ctx, p); err != nil {
			t.Fatalf("Upsert(%s): %v", id, err)
		}
	}
	got, err := store.Resolve(ctx, []string{"p1", "p3", "missing"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("resolved %d, want 2", len(got))
	}
	if got["p1"] == nil || got["p3"] == nil {
		t.Errorf("missing resolved entries: %v", got)
	}
}

func TestSQLiteResolveIncludesListings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"p1", "p2"} {
		if err := store.Upsert(ctx, sampleProduct(id)); err != nil {
			t.Fatalf("Upsert(%s): %v", id, err)
		}
	}
	got, err := store.Resolve(ctx, []string{"p1", "p2"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	for _, id := range []string{"p1", "p2"} {
		p := got[id]
		if p == nil {
			t.Fatalf("%s not resolved", id)
		}
		if len(p.Listings) != 2 {
			t.Fatalf("%s listings = %d, want 2", id, len(p.Listings))
		}
		// batch load keeps the per-product price ordering
		if p.Listings[0].Store != "alpha" || p.Listings[0].Price != 129999 {
			t.Errorf("%s listings wrong: %+v", id, p.Listings)
		}
		if p.Listings[1].Store != "beta" {
			t.Errorf("%s second listing wrong: %+v", id, p.Listings[1])
		}
	}
}

func TestSQLiteAllEmbeddingsCategoryFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	phone := sampleProduct("p1")
	if err := store.Upsert(ctx, phone); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	shoe := sampleProduct("p2")
	shoe.Category = "Footwear"
	if err := store.Upsert(ctx, shoe); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	noEmbedding := sampleProduct("p3")
	noEmbedding.Embedding = nil
	if err := store.Upsert(ctx, noEmbedding); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	all, err := store.AllEmbeddings(ctx, "")
	if err != nil {
		t.Fatalf("AllEmbeddings: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all embeddings = %d, want 2 (embedding-less product excluded)", len(all))
	}

	phones, err := store.AllEmbeddings(ctx, "Smartphones")
	if err != nil {
		t.Fatalf("AllEmbeddings filtered: %v", err)
	}
	if len(phones) != 1 || phones[0].ProductID != "p1" {
		t.Errorf("filtered = %+v", phones)
	}
}

func TestSQLiteDeleteCascadesListings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, sampleProduct("p1")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := store.Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "p1"); err == nil {
		t.Error("deleted product still readable")
	}
}

func TestSQLiteGetMissing(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Get(context.Background(), "nope"); err == nil {
		t.Error("missing product must error")
	}
}

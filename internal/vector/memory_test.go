package vector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func unitX(dim, axis int, val float32) []float32 {
	v := make([]float32, dim)
	v[axis] = val
	return v
}

func seedIndex(t *testing.T) *MemoryIndex {
	t.Helper()
	idx, err := NewMemoryIndex(4)
	if err != nil {
		t.Fatalf("NewMemoryIndex: %v", err)
	}
	entries := []Entry{
		{ProductID: "p1", Category: "Smartphones", Vector: unitX(4, 0, 1)},
		{ProductID: "p2", Category: "Smartphones", Vector: []float32{0.9, 0.436, 0, 0}},
		{ProductID: "p3", Category: "Footwear", Vector: unitX(4, 1, 1)},
		{ProductID: "p4", Category: "Laptops", Vector: []float32{0.6, 0.8, 0, 0}},
	}
	if err := idx.Add(context.Background(), entries); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return idx
}

func TestMemoryIndexSearchOrdersByScore(t *testing.T) {
	idx := seedIndex(t)
	results, err := idx.Search(context.Background(), unitX(4, 0, 1), 3, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].ProductID != "p1" || results[1].ProductID != "p2" {
		t.Errorf("order wrong: %s, %s", results[0].ProductID, results[1].ProductID)
	}
	if results[0].Score < results[1].Score || results[1].Score < results[2].Score {
		t.Errorf("scores not descending")
	}
}

func TestMemoryIndexCategoryFilterPushdown(t *testing.T) {
	idx := seedIndex(t)
	results, err := idx.Search(context.Background(), unitX(4, 0, 1), 10, &Filter{Category: "Smartphones"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("filter must restrict candidates, got %d", len(results))
	}
	for _, r := range results {
		if r.Category != "Smartphones" {
			t.Errorf("leaked category %s", r.Category)
		}
	}
}

func TestMemoryIndexTieBreakByProductID(t *testing.T) {
	idx, _ := NewMemoryIndex(2)
	entries := []Entry{
		{ProductID: "pb", Category: "Electronics", Vector: []float32{1, 0}},
		{ProductID: "pa", Category: "Electronics", Vector: []float32{1, 0}},
		{ProductID: "pc", Category: "Electronics", Vector: []float32{1, 0}},
	}
	if err := idx.Add(context.Background(), entries); err != nil {
		t.Fatalf("Add: %v", err)
	}
	results, err := idx.Search(context.Background(), []float32{1, 0}, 3, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := []string{"pa", "pb", "pc"}
	for i, r := range results {
		if r.ProductID != want[i] {
			t.Errorf("position %d: got %s, want %s", i, r.ProductID, want[i])
		}
	}
}

func TestMemoryIndexRemove(t *testing.T) {
	idx := seedIndex(t)
	if err := idx.Remove(context.Background(), []string{"p1", "p3"}); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if idx.Size() != 2 {
		t.Errorf("size = %d, want 2", idx.Size())
	}
	results, _ := idx.Search(context.Background(), unitX(4, 0, 1), 10, nil)
	for _, r := range results {
		if r.ProductID == "p1" || r.ProductID == "p3" {
			t.Errorf("removed entry %s still present", r.ProductID)
		}
	}
}

func TestMemoryIndexSearchHonorsCancelledContext(t *testing.T) {
	idx := seedIndex(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := idx.Search(ctx, unitX(4, 0, 1), 3, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled search must return context.Canceled, got %v", err)
	}
}

func TestMemoryIndexIDs(t *testing.T) {
	idx := seedIndex(t)
	ids := idx.IDs()
	sort.Strings(ids)
	want := []string{"p1", "p2", "p3", "p4"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids = %v, want %v", ids, want)
			break
		}
	}
	if err := idx.Remove(context.Background(), ids); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(idx.IDs()) != 0 {
		t.Error("removing every reported ID must empty the index")
	}
}

func TestMemoryIndexSaveLoadRoundTrip(t *testing.T) {
	idx := seedIndex(t)
	path := filepath.Join(t.TempDir(), "vectors.bin")
	if err := idx.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, _ := NewMemoryIndex(4)
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Size() != idx.Size() {
		t.Fatalf("size = %d, want %d", loaded.Size(), idx.Size())
	}
	results, err := loaded.Search(context.Background(), unitX(4, 0, 1), 1, &Filter{Category: "Smartphones"})
	if err != nil {
		t.Fatalf("Search after load: %v", err)
	}
	if len(results) != 1 || results[0].ProductID != "p1" || results[0].Category != "Smartphones" {
		t.Errorf("round trip lost data: %+v", results)
	}
}

func TestMemoryIndexLoadMissingFile(t *testing.T) {
	idx, _ := NewMemoryIndex(4)
	if err := idx.Load(filepath.Join(t.TempDir(), "missing.bin")); err != nil {
		t.Errorf("missing file must not error: %v", err)
	}
	if idx.Size() != 0 {
		t.Errorf("index must stay empty")
	}
}

func TestMemoryIndexLoadDimensionMismatch(t *testing.T) {
	idx := seedIndex(t)
	path := filepath.Join(t.TempDir(), "vectors.bin")
	if err := idx.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	other, _ := NewMemoryIndex(8)
	if err := other.Load(path); err == nil {
		t.Error("dimension mismatch must error")
	}
	_ = os.Remove(path)
}

func TestMemoryIndexAddDimensionMismatch(t *testing.T) {
	idx, _ := NewMemoryIndex(4)
	err := idx.Add(context.Background(), []Entry{{ProductID: "p1", Vector: []float32{1, 0}}})
	if err == nil {
		t.Error("dimension mismatch must error")
	}
}

package vector

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// MemoryIndex is an in-memory vector index using brute-force inner product
// search. A product catalog of tens of thousands of items fits comfortably.
type MemoryIndex struct {
	dimensions int
	entries    []Entry
	mu         sync.RWMutex
}

// NewMemoryIndex creates an in-memory vector index with the given dimension.
func NewMemoryIndex(dimensions int) (*MemoryIndex, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &MemoryIndex{
		dimensions: dimensions,
		entries:    make([]Entry, 0),
	}, nil
}

// Add appends entries, copying each vector.
func (m *MemoryIndex) Add(ctx context.Context, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		if len(e.Vector) != m.dimensions {
			return fmt.Errorf("vector dimension mismatch: got %d, expected %d", len(e.Vector), m.dimensions)
		}
		vec := make([]float32, m.dimensions)
		copy(vec, e.Vector)
		m.entries = append(m.entries, Entry{ProductID: e.ProductID, Category: e.Category, Vector: vec})
	}
	return nil
}

// Search returns the top-k entries by inner product, applying the filter
// before ranking. Equal scores break ties by product ID ascending so the
// ordering is stable across runs.
func (m *MemoryIndex) Search(ctx context.Context, query []float32, k int, filter *Filter) ([]*Result, error) {
	if len(query) != m.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d", len(query), m.dimensions)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if k <= 0 || len(m.entries) == 0 {
		return nil, nil
	}
	results := make([]*Result, 0, len(m.entries))
	for i := range m.entries {
		// the scan can be long for large catalogs; honor the caller's deadline
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("vector search cancelled: %w", err)
			}
		}
		e := &m.entries[i]
		if filter != nil && filter.Category != "" && e.Category != filter.Category {
			continue
		}
		var dot float64
		for j := 0; j < m.dimensions; j++ {
			dot += float64(query[j] * e.Vector[j])
		}
		results = append(results, &Result{ProductID: e.ProductID, Category: e.Category, Score: dot})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ProductID < results[j].ProductID
	})
	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Remove removes entries by product ID.
func (m *MemoryIndex) Remove(ctx context.Context, ids []string) error {
	removeSet := make(map[string]bool)
	for _, id := range ids {
		removeSet[id] = true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		if !removeSet[e.ProductID] {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	return nil
}

// Save persists the index to path. Directory is created if needed.
// Format: dimension (4), n (4), then per entry: idLen (4), id bytes,
// catLen (4), category bytes, vector (dimension*4 bytes), little-endian.
func (m *MemoryIndex) Save(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer f.Close()
	if err := binary.Write(f, binary.LittleEndian, uint32(m.dimensions)); err != nil {
		return fmt.Errorf("write dimensions: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(len(m.entries))); err != nil {
		return fmt.Errorf("write count: %w", err)
	}
	for _, e := range m.entries {
		if err := writeString(f, e.ProductID); err != nil {
			return fmt.Errorf("write id: %w", err)
		}
		if err := writeString(f, e.Category); err != nil {
			return fmt.Errorf("write category: %w", err)
		}
		if _, err := f.Write(float32SliceToBytes(e.Vector)); err != nil {
			return fmt.Errorf("write vector: %w", err)
		}
	}
	return nil
}

// Load reads the index from path and replaces the in-memory contents.
// A missing file is not an error; the index is left unchanged.
func (m *MemoryIndex) Load(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open index file: %w", err)
	}
	defer f.Close()
	var dim, n uint32
	if err := binary.Read(f, binary.LittleEndian, &dim); err != nil {
		return fmt.Errorf("read dimensions: %w", err)
	}
	if int(dim) != m.dimensions {
		return fmt.Errorf("dimension mismatch: file has %d, index expects %d", dim, m.dimensions)
	}
	if err := binary.Read(f, binary.LittleEndian, &n); err != nil {
		return fmt.Errorf("read count: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make([]Entry, 0, n)
	buf := make([]byte, m.dimensions*4)
	for i := uint32(0); i < n; i++ {
		id, err := readString(f)
		if err != nil {
			return fmt.Errorf("read id: %w", err)
		}
		category, err := readString(f)
		if err != nil {
			return fmt.Errorf("read category: %w", err)
		}
		if _, err := io.ReadFull(f, buf); err != nil {
			return fmt.Errorf("read vector: %w", err)
		}
		m.entries = append(m.entries, Entry{
			ProductID: id,
			Category:  category,
			Vector:    bytesToFloat32Slice(buf),
		})
	}
	return nil
}

func writeString(f *os.File, s string) error {
	if err := binary.Write(f, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := f.Write([]byte(s))
	return err
}

func readString(f *os.File) (string, error) {
	var n uint32
	if err := binary.Read(f, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(f, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func float32SliceToBytes(s []float32) []byte {
	const size = 4
	out := make([]byte, len(s)*size)
	for i, v := range s {
		binary.LittleEndian.PutUint32(out[i*size:(i+1)*size], math.Float32bits(v))
	}
	return out
}

func bytesToFloat32Slice(b []byte) []float32 {
	const size = 4
	out := make([]float32, len(b)/size)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*size : (i+1)*size]))
	}
	return out
}

// IDs returns the product IDs currently in the index.
func (m *MemoryIndex) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, len(m.entries))
	for i, e := range m.entries {
		ids[i] = e.ProductID
	}
	return ids
}

// Size returns the number of entries in the index.
func (m *MemoryIndex) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close is a no-op for MemoryIndex.
func (m *MemoryIndex) Close() error {
	return nil
}

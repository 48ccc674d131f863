package catalog

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bazaarlabs/khoj/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT,
		raw_category TEXT,
		embedding BLOB,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

	CREATE TABLE IF NOT EXISTS listings (
		product_id TEXT NOT NULL,
		store TEXT NOT NULL,
		price REAL NOT NULL,
		in_stock INTEGER NOT NULL DEFAULT 1,
		url TEXT,
		PRIMARY KEY (product_id, store),
		FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_listings_product_id ON listings(product_id);
	`
	_, err := db.Exec(schema)
	return err
}

// Upsert inserts or replaces a product and its listings in one transaction.
func (s *SQLiteStore) Upsert(ctx context.Context, product *models.ProductRecord) error {
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO products (id, name, category, raw_category, embedding, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			raw_category = excluded.raw_category,
			embedding = excluded.embedding,
			updated_at = excluded.updated_at`,
		product.ID, product.Name, product.Category, product.RawCategory,
		encodeEmbedding(product.Embedding), product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM listings WHERE product_id = ?`, product.ID); err != nil {
		return fmt.Errorf("clear listings: %w", err)
	}
	for _, l := range product.Listings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO listings (product_id, store, price, in_stock, url) VALUES (?, ?, ?, ?, ?)`,
			product.ID, l.Store, l.Price, l.InStock, l.URL,
		); err != nil {
			return fmt.Errorf("insert listing: %w", err)
		}
	}
	return tx.Commit()
}

// Get returns a product by ID, including its listings.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*models.ProductRecord, error) {
	var p models.ProductRecord
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, category, raw_category, embedding, created_at, updated_at
		 FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Category, &p.RawCategory, &blob, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	p.Embedding = decodeEmbedding(blob)

	listings, err := s.listingsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Listings = listings
	return &p, nil
}

// Resolve loads multiple products by ID, including their store listings,
// in two batched queries.
func (s *SQLiteStore) Resolve(ctx context.Context, ids []string) (map[string]*models.ProductRecord, error) {
	out := make(map[string]*models.ProductRecord, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	placeholders := `(?` + repeatPlaceholder(len(ids)-1) + `)`
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, category, raw_category, created_at, updated_at FROM products WHERE id IN `+placeholders,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p models.ProductRecord
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.RawCategory, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lrows, err := s.db.QueryContext(ctx,
		`SELECT product_id, store, price, in_stock, url FROM listings
		 WHERE product_id IN `+placeholders+` ORDER BY product_id, price`,
		args...)
	if err != nil {
		return nil, err
	}
	defer lrows.Close()
	for lrows.Next() {
		var productID string
		var l models.StoreListing
		var url sql.NullString
		if err := lrows.Scan(&productID, &l.Store, &l.Price, &l.InStock, &url); err != nil {
			return nil, err
		}
		l.URL = url.String
		if p, ok := out[productID]; ok {
			p.Listings = append(p.Listings, l)
		}
	}
	return out, lrows.Err()
}

// All returns every product without embeddings or listings.
func (s *SQLiteStore) All(ctx context.Context) ([]*models.ProductRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, category, raw_category, created_at, updated_at FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []*models.ProductRecord
	for rows.Next() {
		var p models.ProductRecord
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.RawCategory, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

// AllEmbeddings returns the embedding view for index building, optionally
// restricted to one category.
func (s *SQLiteStore) AllEmbeddings(ctx context.Context, category string) ([]models.ProductEmbedding, error) {
	query := `SELECT id, category, embedding FROM products WHERE embedding IS NOT NULL`
	args := []interface{}{}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.ProductEmbedding
	for rows.Next() {
		var e models.ProductEmbedding
		var blob []byte
		if err := rows.Scan(&e.ProductID, &e.Category, &blob); err != nil {
			return nil, err
		}
		e.Vector = decodeEmbedding(blob)
		if len(e.Vector) > 0 {
			out = append(out, e)
		}
	}
	return out, rows.Err()
}

// Delete removes a product; listings cascade.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	return err
}

// Count returns the total number of products.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) listingsFor(ctx context.Context, productID string) ([]models.StoreListing, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT store, price, in_stock, url FROM listings WHERE product_id = ? ORDER BY price`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var listings []models.StoreListing
	for rows.Next() {
		var l models.StoreListing
		var url sql.NullString
		if err := rows.Scan(&l.Store, &l.Price, &l.InStock, &url); err != nil {
			return nil, err
		}
		l.URL = url.String
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func repeatPlaceholder(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += ", ?"
	}
	return out
}

// encodeEmbedding packs a vector as little-endian float32 bytes.
func encodeEmbedding(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	out := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:(i+1)*4], math.Float32bits(f))
	}
	return out
}

// decodeEmbedding unpacks little-endian float32 bytes.
func decodeEmbedding(b []byte) []float32 {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4 : (i+1)*4]))
	}
	return out
}

package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bazaarlabs/khoj/internal/category"
	"github.com/bazaarlabs/khoj/internal/models"
)

// ImportXLSX reads a merchant catalog spreadsheet and returns product
// records. The first row is a header; recognized columns are id, name,
// category, store, price, stock and url (case-insensitive, any order).
// Rows sharing an id merge their listings into one product.
func ImportXLSX(path string) ([]*models.ProductRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("catalog sheet %s has no data rows", sheet)
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"id", "name"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("catalog sheet missing %q column", required)
		}
	}

	byID := make(map[string]*models.ProductRecord)
	order := make([]string, 0)
	for rowNum, row := range rows[1:] {
		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		id := cell("id")
		name := cell("name")
		if id == "" || name == "" {
			continue
		}

		p, seen := byID[id]
		if !seen {
			raw := cell("category")
			p = &models.ProductRecord{
				ID:          id,
				Name:        name,
				RawCategory: raw,
				Category:    string(category.Normalize(raw)),
			}
			byID[id] = p
			order = append(order, id)
		}

		store := cell("store")
		if store == "" {
			continue
		}
		price, err := strconv.ParseFloat(cell("price"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad price %q: %w", rowNum+2, cell("price"), err)
		}
		p.Listings = append(p.Listings, models.StoreListing{
			Store:   store,
			Price:   price,
			InStock: parseStock(cell("stock")),
			URL:     cell("url"),
		})
	}

	products := make([]*models.ProductRecord, 0, len(order))
	for _, id := range order {
		products = append(products, byID[id])
	}
	return products, nil
}

func parseStock(s string) bool {
	switch strings.ToLower(s) {
	case "", "yes", "true", "1", "in stock", "y":
		return true
	}
	return false
}

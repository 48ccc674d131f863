package models

import "testing"

func TestSearchRequestValidate(t *testing.T) {
	r := &SearchRequest{}
	if err := r.Validate(); err == nil {
		t.Error("empty request should fail validation")
	}

	r = &SearchRequest{Text: "iphone"}
	if err := r.Validate(); err != nil {
		t.Errorf("text-only request should validate: %v", err)
	}
	if r.TopK != 10 {
		t.Errorf("default top_k should be 10, got %d", r.TopK)
	}

	r = &SearchRequest{ImageData: []byte{0xff, 0xd8}, TopK: 500}
	if err := r.Validate(); err != nil {
		t.Errorf("image-only request should validate: %v", err)
	}
	if r.TopK != 100 {
		t.Errorf("top_k should be clamped to 100, got %d", r.TopK)
	}
}

func TestQuerySearchText(t *testing.T) {
	q := &Query{Normalized: "norm", Corrected: "corr"}
	if q.SearchText() != "corr" {
		t.Error("corrected text preferred over normalized")
	}
	q.Transliterated = "native"
	if q.SearchText() != "native" {
		t.Error("transliterated text preferred when present")
	}
	q = &Query{Normalized: "norm"}
	if q.SearchText() != "norm" {
		t.Error("falls back to normalized")
	}
}

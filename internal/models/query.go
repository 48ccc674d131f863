package models

import "fmt"

// Script identifies the writing system of a query.
type Script string

const (
	ScriptLatin      Script = "latin"
	ScriptDevanagari Script = "devanagari"
	ScriptBengali    Script = "bengali"
	ScriptTamil      Script = "tamil"
	ScriptTelugu     Script = "telugu"
	ScriptKannada    Script = "kannada"
	ScriptMalayalam  Script = "malayalam"
	ScriptGujarati   Script = "gujarati"
	ScriptGurmukhi   Script = "gurmukhi"
	ScriptOdia       Script = "odia"
	ScriptArabic     Script = "arabic"
	ScriptHan        Script = "han"
	ScriptUnknown    Script = "unknown"
)

// Query is the per-request representation built by the preprocessing pipeline.
// It is filled in stage by stage and treated as immutable once the pipeline
// hands it to scoring.
type Query struct {
	Raw             string              `json:"raw"`
	ImageData       []byte              `json:"-"`
	Normalized      string              `json:"normalized"`
	Corrected       string              `json:"corrected"`
	AppliedRewrites []string            `json:"applied_rewrites,omitempty"`
	Tokens          []string            `json:"tokens"`
	Script          Script              `json:"script"`
	Language        string              `json:"language"`
	LangConfidence  float64             `json:"lang_confidence"`
	CodeMixed       bool                `json:"code_mixed"`
	CodeMixTarget   string              `json:"code_mix_target,omitempty"`
	Transliterated  string              `json:"transliterated,omitempty"`
	Features        map[string][]string `json:"features,omitempty"`
	ExpandedTerms   []string            `json:"expanded_terms,omitempty"`
}

// SearchText returns the text to embed and match against: transliterated form
// when available, otherwise the corrected form, otherwise the normalized form.
func (q *Query) SearchText() string {
	if q.Transliterated != "" {
		return q.Transliterated
	}
	if q.Corrected != "" {
		return q.Corrected
	}
	return q.Normalized
}

// SearchRequest is the pipeline input produced by the API layer.
// Exactly one of Text/ImageData must be non-empty, or both (text augments image ranking).
type SearchRequest struct {
	Text         string `json:"text,omitempty"`
	ImageData    []byte `json:"image,omitempty"`
	TopK         int    `json:"top_k,omitempty"`
	CategoryHint string `json:"category_hint,omitempty"`
}

// Validate ensures the request has valid fields and sets defaults.
func (r *SearchRequest) Validate() error {
	if r.Text == "" && len(r.ImageData) == 0 {
		return fmt.Errorf("query must include text or an image")
	}
	if r.TopK <= 0 {
		r.TopK = 10
	}
	if r.TopK > 100 {
		r.TopK = 100
	}
	return nil
}

package models

// ScoredCandidate is a ranked product with its score breakdown. The final score
// is a pure function of the four sub-scores and the configured fusion weights.
type ScoredCandidate struct {
	ProductID              string  `json:"product_id"`
	FinalScore             float64 `json:"final_score"`
	VisualSimilarity       float64 `json:"visual_similarity"`
	KeywordScore           float64 `json:"keyword_score"`
	ExactMatchBonus        float64 `json:"exact_match_bonus"`
	CategoryPenaltyApplied bool    `json:"category_penalty_applied"`
	ExactMatch             bool    `json:"exact_match"`
	Category               string  `json:"category"`
	Product                *ProductRecord `json:"product,omitempty"`
}

// PipelineMeta describes what the preprocessing pipeline did for a request,
// including locally-recovered degradations (WasTransliterated=false after a
// code-mix hit means the transliteration service fell back).
type PipelineMeta struct {
	RequestID        string          `json:"request_id"`
	DetectedLanguage string          `json:"detected_language"`
	Script           Script          `json:"script"`
	CodeMixed        bool            `json:"code_mixed"`
	WasTransliterated bool           `json:"was_transliterated"`
	DetectedCategory string          `json:"detected_category"`
	CacheHits        map[string]bool `json:"cache_hits"`
	TotalLatencyMS   int64           `json:"total_latency_ms"`
}

// SearchResponse is the ranked result list plus pipeline metadata.
type SearchResponse struct {
	Results []*ScoredCandidate `json:"results"`
	Meta    PipelineMeta       `json:"meta"`
}

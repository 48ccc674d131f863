package category

import "strings"

// DetectionInput carries everything the strategies may consult: the query
// tokens after preprocessing and the top visual candidates in score order.
type DetectionInput struct {
	Tokens     []string
	Candidates []Candidate
}

// Candidate is a visual search hit reduced to what detection needs.
type Candidate struct {
	ProductID string
	Category  Category
	Score     float64
}

// Strategy attempts to determine the query's intended category.
type Strategy interface {
	Detect(in *DetectionInput) (Category, bool)
}

// Detector runs its strategies in order and returns the first hit. The
// order is confidence-ranked: an explicit word in the query beats any
// inference from retrieved candidates.
type Detector struct {
	strategies []Strategy
}

// NewDetector builds the standard three-tier detector.
func NewDetector(quorum, topN int) *Detector {
	return &Detector{
		strategies: []Strategy{
			&QueryKeywordStrategy{},
			&VisualConsensusStrategy{Quorum: quorum, TopN: topN},
			&BestMatchStrategy{},
		},
	}
}

// Detect returns the detected category, or Unknown when every strategy
// declines.
func (d *Detector) Detect(in *DetectionInput) Category {
	for _, s := range d.strategies {
		if c, ok := s.Detect(in); ok {
			return c
		}
	}
	return Unknown
}

// QueryKeywordStrategy matches query tokens against the category keyword
// lexicon. "iphone 15 pro" resolves to Smartphones here without touching
// the candidate set.
type QueryKeywordStrategy struct{}

func (s *QueryKeywordStrategy) Detect(in *DetectionInput) (Category, bool) {
	for _, tok := range in.Tokens {
		if c, ok := categoryKeywords[strings.ToLower(tok)]; ok {
			return c, true
		}
	}
	return Unknown, false
}

// VisualConsensusStrategy takes the majority category among the top-N
// candidates, requiring at least Quorum agreeing hits.
type VisualConsensusStrategy struct {
	Quorum int
	TopN   int
}

func (s *VisualConsensusStrategy) Detect(in *DetectionInput) (Category, bool) {
	n := s.TopN
	if n <= 0 {
		n = 5
	}
	quorum := s.Quorum
	if quorum <= 0 {
		quorum = 2
	}
	if n > len(in.Candidates) {
		n = len(in.Candidates)
	}
	counts := make(map[Category]int)
	for _, c := range in.Candidates[:n] {
		if c.Category != Unknown && c.Category != "" {
			counts[c.Category]++
		}
	}
	best := Unknown
	bestCount := 0
	for cat, count := range counts {
		if count > bestCount || (count == bestCount && cat < best) {
			best = cat
			bestCount = count
		}
	}
	if bestCount >= quorum {
		return best, true
	}
	return Unknown, false
}

// BestMatchStrategy falls back to the category of the single best visual
// hit.
type BestMatchStrategy struct{}

func (s *BestMatchStrategy) Detect(in *DetectionInput) (Category, bool) {
	if len(in.Candidates) == 0 {
		return Unknown, false
	}
	c := in.Candidates[0].Category
	if c == Unknown || c == "" {
		return Unknown, false
	}
	return c, true
}

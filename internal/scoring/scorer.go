// Package scoring fuses visual similarity and keyword relevance into a
// single ranked list.
package scoring

import (
	"sort"
	"strings"

	"github.com/bazaarlabs/khoj/internal/category"
	"github.com/bazaarlabs/khoj/internal/models"
	"github.com/bazaarlabs/khoj/pkg/utils"
)

// Weights holds the fusion constants. The defaults are empirically tuned
// starting points, not invariants.
type Weights struct {
	Visual              float64
	Keyword             float64
	CategoryPenalty     float64
	ExactMatchThreshold float64
	BrandBonus          float64
	NameOverlapBonus    float64
	NameOverlapMin      float64
}

// DefaultWeights returns the tuned defaults.
func DefaultWeights() Weights {
	return Weights{
		Visual:              0.5,
		Keyword:             0.3,
		CategoryPenalty:     0.05,
		ExactMatchThreshold: 0.70,
		BrandBonus:          0.30,
		NameOverlapBonus:    0.25,
		NameOverlapMin:      0.6,
	}
}

// Candidate is one product entering the fusion step.
type Candidate struct {
	ProductID string
	Name      string
	Category  category.Category
	Visual    float64
	Keyword   float64
	Product   *models.ProductRecord
}

// QueryContext carries the query-side signals the bonuses depend on.
type QueryContext struct {
	Tokens           []string
	Brands           []string
	DetectedCategory category.Category
}

// HybridScorer computes the final score for each candidate and sorts the
// result. It is a pure function of its inputs and the configured weights.
type HybridScorer struct {
	weights Weights
}

// NewHybridScorer creates a scorer with the given weights.
func NewHybridScorer(w Weights) *HybridScorer {
	return &HybridScorer{weights: w}
}

// Score ranks candidates by
//
//	final = (visual*Wv + keyword*Wk) * penalty + bonus
//
// The penalty is multiplicative and harsh (default 0.05) so wrong-category
// items are squeezed out of the top results rather than merely demoted.
// Bonuses apply only when the candidate's category agrees with the detected
// query category. Ties break by product ID ascending.
func (s *HybridScorer) Score(candidates []Candidate, q QueryContext) []*models.ScoredCandidate {
	out := make([]*models.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		visual := utils.Clamp(c.Visual, 0, 1)
		keyword := utils.Clamp(c.Keyword, 0, 1)
		base := visual*s.weights.Visual + keyword*s.weights.Keyword

		categoryMatch := q.DetectedCategory == category.Unknown ||
			q.DetectedCategory == "" ||
			c.Category == q.DetectedCategory

		penaltyApplied := false
		if !categoryMatch {
			base *= s.weights.CategoryPenalty
			penaltyApplied = true
		}

		var bonus float64
		if categoryMatch {
			if brandMatches(c.Name, q.Brands) {
				bonus += s.weights.BrandBonus
			}
			if nameOverlap(c.Name, q.Tokens) >= s.weights.NameOverlapMin {
				bonus += s.weights.NameOverlapBonus
			}
		}

		final := base + bonus
		out = append(out, &models.ScoredCandidate{
			ProductID:              c.ProductID,
			FinalScore:             final,
			VisualSimilarity:       visual,
			KeywordScore:           keyword,
			ExactMatchBonus:        bonus,
			CategoryPenaltyApplied: penaltyApplied,
			ExactMatch:             final >= s.weights.ExactMatchThreshold,
			Category:               string(c.Category),
			Product:                c.Product,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FinalScore != out[j].FinalScore {
			return out[i].FinalScore > out[j].FinalScore
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}

// brandMatches reports whether any extracted brand appears in the product
// name as a whole word sequence.
func brandMatches(name string, brands []string) bool {
	if len(brands) == 0 {
		return false
	}
	nameLower := " " + strings.ToLower(name) + " "
	for _, b := range brands {
		if strings.Contains(nameLower, " "+strings.ToLower(b)+" ") {
			return true
		}
	}
	return false
}

// nameOverlap returns the fraction of query tokens present in the product
// name.
func nameOverlap(name string, tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	nameTokens := make(map[string]bool)
	for _, t := range strings.Fields(strings.ToLower(name)) {
		nameTokens[t] = true
	}
	matched := 0
	for _, t := range tokens {
		if nameTokens[strings.ToLower(t)] {
			matched++
		}
	}
	return float64(matched) / float64(len(tokens))
}

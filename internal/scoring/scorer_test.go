package scoring

import (
	"math"
	"testing"

	"github.com/bazaarlabs/khoj/internal/category"
)

func TestScoreWrongCategorySqueezedOut(t *testing.T) {
	s := NewHybridScorer(DefaultWeights())
	candidates := []Candidate{
		{ProductID: "p1", Name: "Apple iPhone 15", Category: category.Smartphones, Visual: 0.85, Keyword: 0.9},
		{ProductID: "p2", Name: "Apple iPhone 14", Category: category.Smartphones, Visual: 0.80, Keyword: 0.8},
		{ProductID: "p3", Name: "Cricket Bat", Category: category.Sports, Visual: 0.75, Keyword: 0},
		{ProductID: "p4", Name: "Running Shoes", Category: category.Footwear, Visual: 0.70, Keyword: 0},
		{ProductID: "p5", Name: "Gaming Laptop", Category: category.Laptops, Visual: 0.68, Keyword: 0},
	}
	q := QueryContext{
		Tokens:           []string{"iphone"},
		Brands:           []string{"iphone"},
		DetectedCategory: category.Smartphones,
	}
	ranked := s.Score(candidates, q)

	if ranked[0].ProductID != "p1" || ranked[1].ProductID != "p2" {
		t.Fatalf("matching category must stay on top: %s, %s", ranked[0].ProductID, ranked[1].ProductID)
	}
	if !ranked[0].ExactMatch || !ranked[1].ExactMatch {
		t.Errorf("both matching candidates must clear the exact match threshold: %f, %f",
			ranked[0].FinalScore, ranked[1].FinalScore)
	}
	for _, r := range ranked[2:] {
		if r.FinalScore > 0.0375 {
			t.Errorf("%s: mismatched category score %f exceeds 0.0375", r.ProductID, r.FinalScore)
		}
		if !r.CategoryPenaltyApplied {
			t.Errorf("%s: penalty flag not set", r.ProductID)
		}
		if r.ExactMatch {
			t.Errorf("%s: penalized candidate must not be an exact match", r.ProductID)
		}
	}
}

func TestScorePenaltyIsMultiplicative(t *testing.T) {
	s := NewHybridScorer(DefaultWeights())
	for _, c := range []Candidate{
		{ProductID: "a", Visual: 1.0, Keyword: 1.0, Category: category.Footwear},
		{ProductID: "b", Visual: 0.5, Keyword: 0.9, Category: category.Footwear},
		{ProductID: "c", Visual: 0.3, Keyword: 0.0, Category: category.Footwear},
	} {
		ranked := s.Score([]Candidate{c}, QueryContext{DetectedCategory: category.Smartphones})
		bound := 0.05 * (0.5*c.Visual + 0.3*c.Keyword)
		if ranked[0].FinalScore > bound+1e-9 {
			t.Errorf("%s: final %f exceeds multiplicative bound %f", c.ProductID, ranked[0].FinalScore, bound)
		}
	}
}

func TestScoreBonusesRequireCategoryMatch(t *testing.T) {
	s := NewHybridScorer(DefaultWeights())
	c := Candidate{ProductID: "p1", Name: "Nike Air Shoes", Category: category.Footwear, Visual: 0.9, Keyword: 0.9}
	q := QueryContext{
		Tokens:           []string{"nike", "air", "shoes"},
		Brands:           []string{"nike"},
		DetectedCategory: category.Smartphones,
	}
	ranked := s.Score([]Candidate{c}, q)
	if ranked[0].ExactMatchBonus != 0 {
		t.Errorf("bonus %f granted despite category mismatch", ranked[0].ExactMatchBonus)
	}
}

func TestScoreBrandAndOverlapBonuses(t *testing.T) {
	s := NewHybridScorer(DefaultWeights())
	c := Candidate{ProductID: "p1", Name: "Nike Air Shoes", Category: category.Footwear, Visual: 0.4, Keyword: 0.2}
	q := QueryContext{
		Tokens:           []string{"nike", "air", "shoes"},
		Brands:           []string{"nike"},
		DetectedCategory: category.Footwear,
	}
	ranked := s.Score([]Candidate{c}, q)
	wantBonus := 0.30 + 0.25
	if math.Abs(ranked[0].ExactMatchBonus-wantBonus) > 1e-9 {
		t.Errorf("bonus = %f, want %f", ranked[0].ExactMatchBonus, wantBonus)
	}
	wantFinal := (0.4*0.5 + 0.2*0.3) + wantBonus
	if math.Abs(ranked[0].FinalScore-wantFinal) > 1e-9 {
		t.Errorf("final = %f, want %f", ranked[0].FinalScore, wantFinal)
	}
}

func TestScoreOverlapBelowMinNoBonus(t *testing.T) {
	s := NewHybridScorer(DefaultWeights())
	c := Candidate{ProductID: "p1", Name: "Samsung Galaxy S24 Ultra", Category: category.Smartphones, Visual: 0.5}
	// 1 of 3 tokens overlap, below the 0.6 floor.
	q := QueryContext{
		Tokens:           []string{"galaxy", "cover", "case"},
		DetectedCategory: category.Smartphones,
	}
	ranked := s.Score([]Candidate{c}, q)
	if ranked[0].ExactMatchBonus != 0 {
		t.Errorf("bonus = %f, want 0", ranked[0].ExactMatchBonus)
	}
}

func TestScoreUnknownDetectedCategoryNoPenalty(t *testing.T) {
	s := NewHybridScorer(DefaultWeights())
	c := Candidate{ProductID: "p1", Name: "Wooden Table", Category: category.Furniture, Visual: 0.8, Keyword: 0.5}
	ranked := s.Score([]Candidate{c}, QueryContext{DetectedCategory: category.Unknown})
	if ranked[0].CategoryPenaltyApplied {
		t.Error("penalty must not apply when no query category was detected")
	}
	want := 0.8*0.5 + 0.5*0.3
	if math.Abs(ranked[0].FinalScore-want) > 1e-9 {
		t.Errorf("final = %f, want %f", ranked[0].FinalScore, want)
	}
}

func TestScoreTieBreakByProductID(t *testing.T) {
	s := NewHybridScorer(DefaultWeights())
	candidates := []Candidate{
		{ProductID: "pz", Category: category.Footwear, Visual: 0.5},
		{ProductID: "pa", Category: category.Footwear, Visual: 0.5},
		{ProductID: "pm", Category: category.Footwear, Visual: 0.5},
	}
	ranked := s.Score(candidates, QueryContext{DetectedCategory: category.Footwear})
	want := []string{"pa", "pm", "pz"}
	for i, r := range ranked {
		if r.ProductID != want[i] {
			t.Errorf("position %d: got %s, want %s", i, r.ProductID, want[i])
		}
	}
}

func TestScoreClampsOutOfRangeInputs(t *testing.T) {
	s := NewHybridScorer(DefaultWeights())
	c := Candidate{ProductID: "p1", Category: category.Footwear, Visual: 1.7, Keyword: -0.4}
	ranked := s.Score([]Candidate{c}, QueryContext{DetectedCategory: category.Footwear})
	want := 1.0 * 0.5
	if math.Abs(ranked[0].FinalScore-want) > 1e-9 {
		t.Errorf("final = %f, want %f after clamping", ranked[0].FinalScore, want)
	}
}

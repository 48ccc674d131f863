package spell

import (
	"strings"
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"iphon", "iphone", 1},
	}
	for _, c := range cases {
		if got := LevenshteinDistance(c.a, c.b); got != c.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestDamerauHandlesTransposition(t *testing.T) {
	if got := DamerauLevenshteinDistance("ipohne", "iphone"); got != 1 {
		t.Errorf("transposition should cost 1, got %d", got)
	}
	if got := LevenshteinDistance("ipohne", "iphone"); got != 2 {
		t.Errorf("plain levenshtein counts 2, got %d", got)
	}
}

func TestCorrectMisspelledBrand(t *testing.T) {
	c := NewCorrector()
	got, _ := c.Correct("samsng galaxy")
	if got != "samsung galaxy" {
		t.Errorf("got %q", got)
	}
}

func TestCorrectSplitsCompound(t *testing.T) {
	c := NewCorrector()
	got, _ := c.Correct("iphon12")
	if got != "iphone 12" {
		t.Errorf("compound should correct and split, got %q", got)
	}
	got, _ = c.Correct("iphone15")
	if got != "iphone 15" {
		t.Errorf("known compound should split, got %q", got)
	}
}

func TestCorrectBrandBeatsGeneric(t *testing.T) {
	// "iphne" is distance 1 from both "iphone" and "phone"; brand weight wins
	c := NewCorrector()
	got, _ := c.Correct("iphne")
	if got != "iphone" {
		t.Errorf("brand-weighted correction expected, got %q", got)
	}
}

func TestCorrectLeavesUnknownTokens(t *testing.T) {
	c := NewCorrector()
	got, _ := c.Correct("zzqwx 123456")
	if got != "zzqwx 123456" {
		t.Errorf("unknown and numeric tokens unchanged, got %q", got)
	}
}

func TestCorrectLeavesNativeScript(t *testing.T) {
	c := NewCorrector()
	got, _ := c.Correct("मोबाइल फोन")
	if got != "मोबाइल फोन" {
		t.Errorf("native-script tokens must pass through, got %q", got)
	}
}

func TestRewritePriceShorthand(t *testing.T) {
	c := NewCorrector()
	got, applied := c.Correct("earphones under 5k")
	if got != "earphones under 5000" {
		t.Errorf("got %q", got)
	}
	found := false
	for _, name := range applied {
		if name == "price-k" {
			found = true
		}
	}
	if !found {
		t.Errorf("price-k rule should be reported, applied=%v", applied)
	}
}

func TestRewriteSecondHand(t *testing.T) {
	c := NewCorrector()
	got, _ := c.Correct("second hand laptop below 20000")
	if !strings.Contains(got, "used laptop") {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(got, "under 20000") {
		t.Errorf("below should canonicalize to under, got %q", got)
	}
}

func TestCorrectDeterministic(t *testing.T) {
	c := NewCorrector()
	a, _ := c.Correct("samsng galxy under 15k")
	b, _ := c.Correct("samsng galxy under 15k")
	if a != b {
		t.Errorf("correction must be deterministic: %q vs %q", a, b)
	}
}

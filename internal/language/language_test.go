package language

import (
	"testing"

	"github.com/bazaarlabs/khoj/internal/models"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("iPhone 15-Pro, (128GB)!")
	want := []string{"iphone", "15-pro", "128gb"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if len(Tokenize("")) != 0 {
		t.Error("empty input yields no tokens")
	}
	if len(Tokenize("  ...  !!! ")) != 0 {
		t.Error("punctuation-only input yields no tokens")
	}
}

func TestDetectScript(t *testing.T) {
	cases := []struct {
		text string
		want models.Script
	}{
		{"iphone 15 pro", models.ScriptLatin},
		{"मुझे फोन चाहिए", models.ScriptDevanagari},
		{"আমার স্মার্টফোন লাগবে", models.ScriptBengali},
		{"எனக்கு போன் வேண்டும்", models.ScriptTamil},
		{"", models.ScriptUnknown},
		{"12345 !!!", models.ScriptUnknown},
	}
	for _, c := range cases {
		if got := DetectScript(c.text); got != c.want {
			t.Errorf("DetectScript(%q) = %s, want %s", c.text, got, c.want)
		}
	}
}

func TestDetectScriptMixed(t *testing.T) {
	// majority script wins
	if got := DetectScript("सैमसंग गैलेक्सी फोन s24"); got != models.ScriptDevanagari {
		t.Errorf("got %s", got)
	}
}

func TestDetectorUnknownOnGarbage(t *testing.T) {
	d := NewDetector()
	for _, in := range []string{"", "   ", "\t\n"} {
		det := d.Detect(in)
		if det.Language != "unknown" || det.Confidence != 0 {
			t.Errorf("Detect(%q) = %+v, want unknown/0", in, det)
		}
	}
}

func TestDetectorEnglish(t *testing.T) {
	d := NewDetector()
	det := d.Detect("I am looking for wireless headphones with good battery life")
	if det.Language != "en" {
		t.Errorf("expected en, got %s (confidence %f)", det.Language, det.Confidence)
	}
}

func TestCodeMixHindi(t *testing.T) {
	d := NewCodeMixDetector()
	res := d.Detect(Tokenize("mujhe headphone chahiye"), "en")
	if !res.IsRomanized || res.TargetLang != "hi" {
		t.Errorf("expected romanized hindi, got %+v", res)
	}
}

func TestCodeMixBengali(t *testing.T) {
	d := NewCodeMixDetector()
	res := d.Detect(Tokenize("amar smartphone lagbe"), "en")
	if !res.IsRomanized || res.TargetLang != "bn" {
		t.Errorf("expected romanized bengali, got %+v", res)
	}
}

func TestCodeMixPlainEnglish(t *testing.T) {
	d := NewCodeMixDetector()
	res := d.Detect(Tokenize("wireless headphones with noise cancelling"), "en")
	if res.IsRomanized {
		t.Errorf("plain english misclassified: %+v", res)
	}
}

func TestCodeMixEmpty(t *testing.T) {
	d := NewCodeMixDetector()
	res := d.Detect(nil, "en")
	if res.IsRomanized {
		t.Error("empty input is not romanized")
	}
}

func TestClassifierSeparates(t *testing.T) {
	romanized := classifyRomanized("sasta accha phone dikhao bhai")
	english := classifyRomanized("showing the best products for the listing")
	if romanized <= english {
		t.Errorf("romanized text should score higher: %f vs %f", romanized, english)
	}
}

package normalize

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNormalizeBasic(t *testing.T) {
	n := NewNormalizer(nil, 10, nil)
	got, _ := n.Normalize("  IPhone   15  PRO ")
	if got != "iphone 15 pro" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeStripsControlChars(t *testing.T) {
	n := NewNormalizer(nil, 10, nil)
	got, _ := n.Normalize("headph\u200bones under 2k")
	if got != "headphones under 2k" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeGarbageInputDoesNotPanic(t *testing.T) {
	n := NewNormalizer(nil, 10, nil)
	inputs := []string{"", "   ", string([]byte{0xff, 0xfe, 0x00, 0x01}), "\x7f\x1b[0m"}
	for _, in := range inputs {
		_, _ = n.Normalize(in) // must not panic
	}
	if got, _ := n.Normalize(""); got != "" {
		t.Error("empty input should normalize to empty")
	}
}

func TestNormalizeExpandsURL(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer final.Close()
	short := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL+"/apple-iphone-15-pro-128gb", http.StatusFound)
	}))
	defer short.Close()

	resolver := NewURLResolver(5, 2*time.Second)
	n := NewNormalizer(resolver, 10, nil)
	got, hit := n.Normalize(short.URL + "/x1y2")
	if got != "apple iphone 15 pro 128gb" {
		t.Errorf("got %q", got)
	}
	if hit {
		t.Error("first resolution must not report a cache hit")
	}

	// second call must be a cache hit, and report it to the caller
	hitsBefore, _ := n.CacheStats()
	second, hit := n.Normalize(short.URL + "/x1y2")
	hitsAfter, _ := n.CacheStats()
	if hitsAfter != hitsBefore+1 {
		t.Error("second resolution should hit the URL cache")
	}
	if !hit {
		t.Error("second resolution should report a cache hit")
	}
	if second != got {
		t.Errorf("cached expansion %q differs from first %q", second, got)
	}
}

func TestNormalizeURLFailureFallsBack(t *testing.T) {
	resolver := NewURLResolver(5, 100*time.Millisecond)
	n := NewNormalizer(resolver, 10, nil)
	// unroutable address: resolution fails, slug of the original URL is used
	got, _ := n.Normalize("http://192.0.2.1/samsung-galaxy-s24")
	if got != "samsung galaxy s24" {
		t.Errorf("got %q", got)
	}
}

func TestURLResolverHopBound(t *testing.T) {
	var hops int
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hops++
		http.Redirect(w, r, srv.URL+"/next", http.StatusFound)
	}))
	defer srv.Close()

	resolver := NewURLResolver(3, 2*time.Second)
	if _, err := resolver.Resolve(srv.URL); err == nil {
		t.Error("unbounded redirect chain should error out")
	}
}

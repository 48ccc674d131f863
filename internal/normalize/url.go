package normalize

import (
	"fmt"
	"net/http"
	"time"
)

// URLResolver follows redirects from shortened URLs to their final location,
// with a bounded number of hops and a timeout per request.
type URLResolver struct {
	client  *http.Client
	maxHops int
}

// NewURLResolver creates a resolver. maxHops bounds redirect chains; hopTimeout
// bounds the whole resolution attempt.
func NewURLResolver(maxHops int, hopTimeout time.Duration) *URLResolver {
	if maxHops <= 0 {
		maxHops = 5
	}
	r := &URLResolver{maxHops: maxHops}
	r.client = &http.Client{
		Timeout: hopTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= r.maxHops {
				return fmt.Errorf("stopped after %d redirect hops", r.maxHops)
			}
			return nil
		},
	}
	return r
}

// Resolve issues a HEAD request and returns the final URL after redirects.
// Any network error or non-2xx terminal response is returned as an error;
// callers degrade to the original string.
func (r *URLResolver) Resolve(rawURL string) (string, error) {
	req, err := http.NewRequest(http.MethodHead, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolve url: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("resolve url: status %d", resp.StatusCode)
	}
	return resp.Request.URL.String(), nil
}

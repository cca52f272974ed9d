package pagesource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html"

	"github.com/trustlens/trustlens/internal/model"
)

// Default HTTP source settings.
const (
	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodySize limits how much of a response body is read.
	// 5MB covers ordinary HTML pages while bounding memory usage.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultUserAgent identifies TrustLens in HTTP requests.
	DefaultUserAgent = "TrustLens/1.0 (+https://github.com/trustlens/trustlens)"
)

// HTTPSource fetches pages over HTTP and extracts their visible text
// and outbound links.
type HTTPSource struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.client = client
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) HTTPOption {
	return func(s *HTTPSource) {
		s.userAgent = userAgent
	}
}

// WithMaxBodySize overrides the response body read limit.
func WithMaxBodySize(limit int64) HTTPOption {
	return func(s *HTTPSource) {
		s.maxBodySize = limit
	}
}

// NewHTTPSource creates an HTTPSource with the default client.
func NewHTTPSource(opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		client:      &http.Client{Timeout: DefaultTimeout},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ActiveSnapshot fetches url and returns its snapshot. Network
// failures, non-2xx responses, and unparseable bodies all surface as
// *PageAccessError.
func (s *HTTPSource) ActiveSnapshot(ctx context.Context, pageURL string) (model.PageSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return model.PageSnapshot{}, &PageAccessError{URL: pageURL, Cause: err}
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return model.PageSnapshot{}, &PageAccessError{URL: pageURL, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.PageSnapshot{}, &PageAccessError{
			URL:   pageURL,
			Cause: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, s.maxBodySize))
	if err != nil {
		return model.PageSnapshot{}, &PageAccessError{URL: pageURL, Cause: err}
	}

	// The final URL after redirects is what the structural checks must
	// judge, not the address the user typed.
	finalURL := pageURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	text, links := extractContent(doc, finalURL)
	return model.NewPageSnapshot(finalURL, text, links), nil
}

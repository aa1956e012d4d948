// Package doi fetches BibTeX records for DOIs via doi.org content
// negotiation.
package doi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/bibfront/bibfront/internal/catalog"
)

const (
	// BaseURL is the DOI resolver base URL.
	BaseURL = "https://doi.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit keeps requests well under the Crossref politeness threshold.
	RateLimit = 5.0
)

// Client is a rate-limited HTTP client for the DOI resolver.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMailTo sets a contact address sent in the User-Agent header, per the
// resolver's politeness policy.
func WithMailTo(mailto string) ClientOption {
	return func(c *Client) {
		c.mailto = mailto
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a new DOI resolver client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchBibTeX resolves a DOI to its BibTeX record. The input may carry a
// doi.org URL prefix; it is normalized before the request.
func (c *Client) FetchBibTeX(ctx context.Context, doi string) (string, error) {
	doi = catalog.NormalizeDOI(doi)
	if doi == "" {
		return "", fmt.Errorf("empty DOI")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+doi, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/x-bibtex")
	ua := "bibfront"
	if c.mailto != "" {
		ua = fmt.Sprintf("bibfront (mailto:%s)", c.mailto)
	}
	req.Header.Set("User-Agent", ua)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", doi, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("DOI not found: %s", doi)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("resolver returned %s for %s", resp.Status, doi)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response for %s: %w", doi, err)
	}

	return string(body), nil
}

// Package crossref queries the CrossRef works API to resolve DOIs by title.
package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matsen/doify/internal/similarity"
)

const (
	// BaseURL is the CrossRef REST API base URL.
	BaseURL = "https://api.crossref.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMatchThreshold is the author-similarity score a candidate
	// must exceed to be accepted as the requested author.
	DefaultMatchThreshold = 0.8
)

// Client is an HTTP client for the CrossRef works API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	mailto     string
	threshold  float64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

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

// WithMailto sets the contact address sent in the User-Agent, which
// routes requests to CrossRef's polite pool.
func WithMailto(mailto string) ClientOption {
	return func(c *Client) {
		c.mailto = mailto
	}
}

// WithMatchThreshold sets the author-similarity acceptance threshold.
func WithMatchThreshold(threshold float64) ClientOption {
	return func(c *Client) {
		c.threshold = threshold
	}
}

// NewClient creates a new CrossRef API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    BaseURL,
		threshold:  DefaultMatchThreshold,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Work is one item from a works query. Ephemeral: examined for the
// match decision and discarded.
type Work struct {
	DOI            string   `json:"DOI"`
	Title          []string `json:"title"`
	Authors        []Author `json:"author"`
	ContainerTitle []string `json:"container-title"`
	Issued         struct {
		DateParts [][]int `json:"date-parts"`
	} `json:"issued"`
}

// Author is one author record on a work.
type Author struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// Year returns the work's issued year, or 0 if absent.
func (w *Work) Year() int {
	if len(w.Issued.DateParts) > 0 && len(w.Issued.DateParts[0]) > 0 {
		return w.Issued.DateParts[0][0]
	}
	return 0
}

// worksResponse is the envelope around a works query result.
type worksResponse struct {
	Message struct {
		Items []Work `json:"items"`
	} `json:"message"`
}

// SearchTitle queries the works endpoint by title and returns the
// single top-relevance result. Returns ErrNoResults when the query
// yields no items. Exactly one HTTP request; no retries.
func (c *Client) SearchTitle(ctx context.Context, title string) (*Work, error) {
	params := url.Values{}
	params.Set("query.title", title)
	params.Set("rows", "1")

	reqURL := fmt.Sprintf("%s/works?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp.StatusCode); err != nil {
		return nil, err
	}

	var works worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&works); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if len(works.Message.Items) == 0 {
		return nil, ErrNoResults
	}
	return &works.Message.Items[0], nil
}

// FindDOI resolves a DOI for a title, validated against an author
// surname. Only the single top-ranked result is examined: the first of
// its authors whose lowercased family name scores above the threshold
// against the lowercased requested surname wins, and weaker-ranked
// results are never consulted even when the top result's authors all
// fail. Returns ErrNoAuthorMatch when no author is accepted.
func (c *Client) FindDOI(ctx context.Context, title, author string) (string, error) {
	work, err := c.SearchTitle(ctx, title)
	if err != nil {
		return "", err
	}

	want := strings.ToLower(author)
	for _, a := range work.Authors {
		if a.Family == "" {
			continue
		}
		if similarity.Ratio(strings.ToLower(a.Family), want) > c.threshold {
			if work.DOI == "" {
				return "", ErrNoAuthorMatch
			}
			return work.DOI, nil
		}
	}
	return "", ErrNoAuthorMatch
}

func (c *Client) userAgent() string {
	if c.mailto != "" {
		return fmt.Sprintf("doify (mailto:%s)", c.mailto)
	}
	return "doify"
}

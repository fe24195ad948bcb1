package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultSearchURL is the Serper search endpoint
	DefaultSearchURL = "https://google.serper.dev/search"

	defaultSearchRateLimit = 5 // requests per second
	defaultSearchBurst     = 5
	defaultSearchTimeout   = 30 * time.Second
)

// SerperClient calls the Serper web search API
type SerperClient struct {
	apiKey     string
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// SerperOption configures a SerperClient
type SerperOption func(*SerperClient)

// WithSearchURL overrides the search endpoint
func WithSearchURL(url string) SerperOption {
	return func(c *SerperClient) {
		if url != "" {
			c.url = url
		}
	}
}

// WithSearchHTTPClient sets the HTTP client used for searches
func WithSearchHTTPClient(hc *http.Client) SerperOption {
	return func(c *SerperClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithSearchRateLimit caps outbound searches per second
func WithSearchRateLimit(perSecond float64, burst int) SerperOption {
	return func(c *SerperClient) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewSerperClient creates a search client authenticated with apiKey
func NewSerperClient(apiKey string, opts ...SerperOption) (*SerperClient, error) {
	if apiKey == "" {
		return nil, errors.New("serper API key required")
	}

	c := &SerperClient{
		apiKey:     apiKey,
		url:        DefaultSearchURL,
		httpClient: &http.Client{Timeout: defaultSearchTimeout},
		limiter:    rate.NewLimiter(rate.Limit(defaultSearchRateLimit), defaultSearchBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search posts the query and decodes the organic results
func (c *SerperClient) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError("serper", resp)
	}

	var out SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

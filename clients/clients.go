// Package clients holds the outbound HTTP clients used by the recon job:
// a web search provider and a transactional email provider.
package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// SearchClient runs one web search
type SearchClient interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// Mailer delivers one email and returns the provider's message ID
type Mailer interface {
	Send(ctx context.Context, email Email) (string, error)
}

// SearchRequest is the body sent to the search provider
type SearchRequest struct {
	Query   string `json:"q"`
	Recency string `json:"tbs,omitempty"`
}

// OrganicResult is one organic search hit
type OrganicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// SearchResponse is the subset of the provider response the job reads
type SearchResponse struct {
	Organic []OrganicResult `json:"organic"`
}

// Email is a plain-text message
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// StatusError reports a non-2xx response from a provider
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s API error: %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s API error: %d - %s", e.Provider, e.StatusCode, e.Body)
}

// maxErrorBody bounds how much of an error response is kept
const maxErrorBody = 512

func statusError(provider string, resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Provider:   provider,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

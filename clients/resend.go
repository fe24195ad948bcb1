package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultEmailURL is the Resend send-email endpoint
	DefaultEmailURL = "https://api.resend.com/emails"

	defaultEmailTimeout = 30 * time.Second
)

// ErrMissingMessageID is returned when the provider accepts a send without
// returning a message ID, so delivery cannot be confirmed
var ErrMissingMessageID = errors.New("resend response missing message id")

// ResendClient sends email through the Resend API
type ResendClient struct {
	apiKey     string
	url        string
	httpClient *http.Client
}

// ResendOption configures a ResendClient
type ResendOption func(*ResendClient)

// WithEmailURL overrides the send endpoint
func WithEmailURL(url string) ResendOption {
	return func(c *ResendClient) {
		if url != "" {
			c.url = url
		}
	}
}

// WithEmailHTTPClient sets the HTTP client used for sends
func WithEmailHTTPClient(hc *http.Client) ResendOption {
	return func(c *ResendClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewResendClient creates an email client authenticated with apiKey
func NewResendClient(apiKey string, opts ...ResendOption) (*ResendClient, error) {
	if apiKey == "" {
		return nil, errors.New("resend API key required")
	}

	c := &ResendClient{
		apiKey:     apiKey,
		url:        DefaultEmailURL,
		httpClient: &http.Client{Timeout: defaultEmailTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Send delivers the email once. It is not retried, a retry could deliver twice.
func (c *ResendClient) Send(ctx context.Context, email Email) (string, error) {
	jsonData, err := json.Marshal(email)
	if err != nil {
		return "", fmt.Errorf("failed to marshal email: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError("resend", resp)
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if out.ID == "" {
		return "", ErrMissingMessageID
	}
	return out.ID, nil
}

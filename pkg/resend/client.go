// Package resend is a lightweight client for the Resend transactional email API.
// It uses raw HTTP calls rather than the vendor SDK.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.resend.com"

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 64 << 10

// ErrNotConfigured is returned when no API key has been set.
var ErrNotConfigured = errors.New("resend: not configured")

// SendEmailParams is the request body of POST /emails.
type SendEmailParams struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// APIError is returned for any non-2xx response. Body holds the raw response text.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("resend: API error %d: %s", e.StatusCode, e.Body)
}

// Client sends email through Resend.
type Client interface {
	// SendEmail delivers one message and returns the provider's message ID.
	SendEmail(ctx context.Context, params SendEmailParams) (string, error)
}

// RealClient is the raw HTTP implementation of Client.
type RealClient struct {
	APIKey     string
	BaseURL    string
	httpClient *http.Client
}

// NewClient creates a RealClient. An empty baseURL selects DefaultBaseURL.
func NewClient(apiKey, baseURL string) *RealClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &RealClient{
		APIKey:     apiKey,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Client = (*RealClient)(nil)

// SendEmail posts params to {BaseURL}/emails with bearer authentication.
func (c *RealClient) SendEmail(ctx context.Context, params SendEmailParams) (string, error) {
	if c.APIKey == "" {
		return "", ErrNotConfigured
	}

	jsonBody, err := json.Marshal(params)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/emails", bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	// A 2xx without a parsable id still counts as accepted.
	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil || result.ID == "" {
		slog.DebugContext(ctx, "resend: accepted response without message id",
			"status", resp.StatusCode, "body", string(body), "error", err)
	}
	return result.ID, nil
}

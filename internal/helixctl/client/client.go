// Package client is the HTTP client helixctl uses to talk to helixd.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kiosk404/helix/pkg/utils/json"
)

// SearchRequest is the body of POST /v1/search.
type SearchRequest struct {
	UserID string `json:"user_id"`
	Query  string `json:"query"`
}

// SearchResponse is the success payload of POST /v1/search.
type SearchResponse struct {
	UserID    string `json:"user_id"`
	Query     string `json:"query"`
	Result    string `json:"result"`
	RequestID string `json:"request_id"`
}

// Run is one entry of GET /v1/runs.
type Run struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Query       string `json:"query"`
	Status      string `json:"status"`
	Result      string `json:"result,omitempty"`
	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// errResponse mirrors helixd's error envelope.
type errResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HelixClient is the HTTP client for the helixd search API.
type HelixClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// New creates a client. A nil httpClient gets a generous default timeout,
// since one search request may drive several model calls.
func New(baseURL, token string, httpClient *http.Client) *HelixClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Minute}
	}
	return &HelixClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: httpClient,
	}
}

// Search runs one search request.
func (c *HelixClient) Search(ctx context.Context, userID, query string) (*SearchResponse, error) {
	body, err := json.Marshal(SearchRequest{UserID: userID, Query: query})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var resp SearchResponse
	if err := c.do(ctx, http.MethodPost, "/v1/search", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListRuns lists the user's past runs, newest first.
func (c *HelixClient) ListRuns(ctx context.Context, userID string) ([]Run, error) {
	var runs []Run
	if err := c.do(ctx, http.MethodGet, "/v1/runs?user_id="+userID, nil, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// GetRun fetches one run by id.
func (c *HelixClient) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	if err := c.do(ctx, http.MethodGet, "/v1/runs/"+id, nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// Health checks the liveness endpoint.
func (c *HelixClient) Health(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/healthz", nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

func (c *HelixClient) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errResponse
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("%s (HTTP %d, code %d)", apiErr.Message, resp.StatusCode, apiErr.Code)
		}
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

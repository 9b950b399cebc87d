// client/client.go
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client issues requests against a PanelBoard server. It carries the session
// cookie across calls, so a login through the same Client authenticates the
// frontend endpoints.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Log        *zap.Logger
}

// New creates a Client for the given base URL. The default HTTP client has a
// cookie jar and a 10 second timeout.
func New(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
		Log: logger,
	}
}

// getJSON performs a GET and decodes the JSON body into dest, classifying
// any failure.
func (c *Client) getJSON(ctx context.Context, path string, dest any) *FetchError {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return &FetchError{Kind: ErrNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &FetchError{Kind: ErrNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Kind: ErrBadStatus, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &FetchError{Kind: ErrDecode, Err: err}
	}
	return nil
}

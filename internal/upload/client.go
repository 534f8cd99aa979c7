package upload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/meltforce/hyroxlab/internal/ingest"
)

// Client sends export files to the HyroxLab server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the HyroxLab server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SendJSON POSTs a RoxFit JSON export to the server's ingest endpoint.
// Retries up to 3 times with exponential backoff on failure.
func (c *Client) SendJSON(data []byte) (*ingest.Result, error) {
	return c.send(c.serverURL+"/api/v1/ingest/", "application/json", data)
}

// SendCSV POSTs a flat CSV export to the server's CSV ingest endpoint.
func (c *Client) SendCSV(data []byte) (*ingest.Result, error) {
	return c.send(c.serverURL+"/api/v1/ingest/csv", "text/csv", data)
}

func (c *Client) send(url, contentType string, data []byte) (*ingest.Result, error) {
	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			var result ingest.Result
			if err := json.Unmarshal(body, &result); err != nil {
				return nil, fmt.Errorf("decoding ingest result: %w", err)
			}
			return &result, nil
		}
		lastErr = fmt.Errorf("ingest failed (status %d): %s", resp.StatusCode, body)

		// Auth and validation failures won't succeed on retry.
		if resp.StatusCode == http.StatusUnauthorized ||
			resp.StatusCode == http.StatusForbidden ||
			resp.StatusCode == http.StatusBadRequest {
			break
		}
	}

	return nil, fmt.Errorf("after retries: %w", lastErr)
}

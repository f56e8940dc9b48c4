package mbta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "https://api-v3.mbta.com"

// DefaultTimeout bounds each request so a single unresponsive endpoint
// cannot hang a whole run.
const DefaultTimeout = 10 * time.Second

// ErrRateLimited is returned when the API answers 429. The MBTA applies the
// limit per key so one means every following request would get the same
// answer - callers treat it as terminal for the run.
var ErrRateLimited = errors.New("MBTA API rate limit exceeded")

type Client struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		APIKey:  apiKey,
		Timeout: DefaultTimeout,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, output any) error {
	requestURL := fmt.Sprintf("%s%s?%s", c.BaseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/vnd.api+json")
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	client := &http.Client{Timeout: c.Timeout}
	resp, err := client.Do(req)

	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("request for %s failed with status %d", path, resp.StatusCode)
	}

	jsonBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(jsonBytes, output); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	return nil
}

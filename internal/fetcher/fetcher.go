package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// UserAgent mimics a desktop browser; the site serves different (or no)
	// markup to clients that identify as scripts.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/110.0.0.0 Safari/537.36"

	// Timeout bounds each request end to end.
	Timeout = 10 * time.Second
)

// Client fetches pages with a fixed identity header and timeout
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a new Client. A non-positive timeout selects the default.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = Timeout
	}
	return &Client{
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: UserAgent,
	}
}

// Get performs a single GET of url and returns the response body. Any
// transport failure or non-2xx status is an error; there are no retries.
func (c *Client) Get(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return body, nil
}

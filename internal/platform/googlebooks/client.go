package googlebooks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"reviewshelf/internal/catalog"
)

const DefaultBaseURL = "https://www.googleapis.com/books/v1"

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
}

func NewClient(baseURL, userAgent string, rps int, maxRetries int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent:  userAgent,
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries: maxRetries,
	}
}

// searchResponse matches GET /volumes?q=
type searchResponse struct {
	TotalItems int                  `json:"totalItems"`
	Items      []catalog.BookRecord `json:"items"`
}

// Search queries the catalog with free text. A response without items
// normalizes to an empty slice, never nil-as-error.
func (c *Client) Search(ctx context.Context, query string) ([]catalog.BookRecord, error) {
	u := fmt.Sprintf("%s/volumes?q=%s", c.baseURL, url.QueryEscape(query))

	var res searchResponse
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	if res.Items == nil {
		return []catalog.BookRecord{}, nil
	}
	return res.Items, nil
}

// Lookup fetches one volume by its catalog identifier. An unknown
// identifier is not an error: the catalog answers with an error payload
// and Lookup returns that record as-is, which downstream callers rely on.
func (c *Client) Lookup(ctx context.Context, id string) (catalog.BookRecord, error) {
	u := fmt.Sprintf("%s/volumes/%s", c.baseURL, url.PathEscape(id))

	var rec catalog.BookRecord
	if err := c.get(ctx, u, &rec); err != nil {
		return catalog.BookRecord{}, err
	}
	return rec, nil
}

func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// Backoff: 1s, 2s, 4s...
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			continue
		}

		// 4xx bodies decode too: the catalog reports unknown volumes as
		// an error payload inside the regular JSON shape.
		decodeErr := json.NewDecoder(resp.Body).Decode(target)
		resp.Body.Close()
		return decodeErr
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

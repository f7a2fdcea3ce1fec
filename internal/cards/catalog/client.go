// Package catalog fetches and loads card catalogs and rebuilds the lookup
// snapshot when they change.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/twinsuns/league-hq/internal/cards"
)

const (
	rateLimitDelay = 100 * time.Millisecond // 10 req/sec
	requestTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second
)

// Client fetches card catalogs from the remote catalog API with rate
// limiting and retry.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
}

// NewClient creates a new catalog API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		userAgent:   "league-hq/1.0",
	}
}

// catalogResponse is the remote API's card list envelope.
type catalogResponse struct {
	TotalCards int                `json:"total_cards"`
	Cards      []cards.CardRecord `json:"cards"`
}

// FetchCatalog retrieves the full card catalog for a game edition.
func (c *Client) FetchCatalog(ctx context.Context, edition string) ([]cards.CardRecord, error) {
	url := fmt.Sprintf("%s/catalog/%s/cards", c.baseURL, edition)

	var resp catalogResponse
	if err := c.doRequest(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch catalog %s: %w", edition, err)
	}

	return resp.Cards, nil
}

// FetchCard retrieves a single card by canonical id.
func (c *Client) FetchCard(ctx context.Context, cardID string) (*cards.CardRecord, error) {
	url := fmt.Sprintf("%s/cards/%s", c.baseURL, cardID)

	var card cards.CardRecord
	if err := c.doRequest(ctx, url, &card); err != nil {
		return nil, fmt.Errorf("failed to fetch card %s: %w", cardID, err)
	}

	return &card, nil
}

// doRequest performs a GET with rate limiting and exponential-backoff retry
// on network errors and HTTP 429/5xx.
func (c *Client) doRequest(ctx context.Context, url string, result interface{}) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = min(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				return fmt.Errorf("failed to read response body: %w", readErr)
			}
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("failed to parse JSON response: %w", err)
			}
			return nil

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("catalog API returned HTTP %d", resp.StatusCode)
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = min(backoff*2, maxBackoff)
				continue
			}
			return lastErr

		default:
			return fmt.Errorf("catalog API returned HTTP %d", resp.StatusCode)
		}
	}

	return lastErr
}

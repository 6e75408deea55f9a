package eventbrite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/custodia-labs/britecal/internal/logger"
)

// Client fetches order data from the Eventbrite v3 API.
// Access tokens are supplied per call; the client holds no credentials.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *RateLimiter
	pageSize    int
}

// ClientConfig holds Eventbrite client configuration.
type ClientConfig struct {
	// BaseURL overrides the Eventbrite API base, for tests.
	BaseURL string
	// Timeout bounds every request.
	Timeout time.Duration
	// PageSize is the requested page size for listings.
	PageSize int
	// RateLimit tunes the outbound limiter.
	RateLimit RateLimitConfig
}

// NewClient creates a new Eventbrite API client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://www.eventbriteapi.com/v3"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	return &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: NewRateLimiterWithConfig(cfg.RateLimit),
		pageSize:    pageSize,
	}
}

// ListOrders fetches all of the user's orders, following pagination
// continuations until exhausted. The nested event (and its venue) is expanded
// on each order. Listing is all-or-nothing: any failed page fails the call.
func (c *Client) ListOrders(ctx context.Context, accessToken string) ([]Order, error) {
	var orders []Order
	continuation := ""

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.fetchOrdersPage(ctx, accessToken, continuation)
		if err != nil {
			return nil, err
		}

		logger.Debug("eventbrite: orders page %d returned %d orders (has_more=%v)",
			page, len(resp.Orders), resp.Pagination.HasMoreItems)

		orders = append(orders, resp.Orders...)

		if !resp.Pagination.HasMoreItems {
			break
		}
		if resp.Pagination.Continuation == "" {
			return nil, fmt.Errorf("orders page %d reports more items but no continuation", page)
		}
		continuation = resp.Pagination.Continuation
	}

	return orders, nil
}

// fetchOrdersPage fetches a single page of the orders listing.
func (c *Client) fetchOrdersPage(
	ctx context.Context, accessToken, continuation string,
) (*ordersResponse, error) {
	params := url.Values{
		"expand":    {"event,event.venue"},
		"page_size": {strconv.Itoa(c.pageSize)},
	}
	if continuation != "" {
		params.Set("continuation", continuation)
	}
	reqURL := c.baseURL + "/users/me/orders/?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("orders request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if IsRateLimited(resp.StatusCode) {
		c.rateLimiter.RecordRateLimitError(parseRetryAfter(resp.Header.Get("Retry-After")))
	}
	if resp.StatusCode != http.StatusOK {
		logger.Debug("eventbrite: orders request failed with status %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("orders request failed with status %d: %w",
			resp.StatusCode, WrapError(resp.StatusCode))
	}

	var ordersResp ordersResponse
	if err := json.Unmarshal(body, &ordersResp); err != nil {
		return nil, fmt.Errorf("decode orders response: %w", err)
	}

	return &ordersResp, nil
}

// parseRetryAfter reads a Retry-After header value in seconds.
func parseRetryAfter(value string) int {
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

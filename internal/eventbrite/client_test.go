package eventbrite

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:  baseURL,
		Timeout:  5 * time.Second,
		PageSize: 50,
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			BurstSize:         10,
		},
	})
}

func TestClient_ListOrders_SinglePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me/orders/", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "event,event.venue", r.URL.Query().Get("expand"))
		assert.Equal(t, "50", r.URL.Query().Get("page_size"))
		assert.Empty(t, r.URL.Query().Get("continuation"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"pagination": {"object_count": 1, "page_number": 1, "has_more_items": false},
			"orders": [{"id": "order-1", "status": "placed", "event_id": "ev-1"}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	orders, err := client.ListOrders(context.Background(), "test-token")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "order-1", orders[0].ID)
}

func TestClient_ListOrders_FollowsContinuation(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Query().Get("continuation") {
		case "":
			_, _ = w.Write([]byte(`{
				"pagination": {"has_more_items": true, "continuation": "page-2-cursor"},
				"orders": [{"id": "order-1"}, {"id": "order-2"}]
			}`))
		case "page-2-cursor":
			_, _ = w.Write([]byte(`{
				"pagination": {"has_more_items": false},
				"orders": [{"id": "order-3"}]
			}`))
		default:
			t.Errorf("unexpected continuation %q", r.URL.Query().Get("continuation"))
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	orders, err := client.ListOrders(context.Background(), "test-token")
	require.NoError(t, err)
	assert.Equal(t, 2, requests)
	require.Len(t, orders, 3)
	assert.Equal(t, "order-1", orders[0].ID)
	assert.Equal(t, "order-3", orders[2].ID)
}

func TestClient_ListOrders_EmptyListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"pagination": {"object_count": 0, "has_more_items": false},
			"orders": []
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	orders, err := client.ListOrders(context.Background(), "test-token")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestClient_ListOrders_Unauthorised(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "INVALID_AUTH"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.ListOrders(context.Background(), "bad-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorised)
}

func TestClient_ListOrders_MidPaginationFailureIsFatal(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		if requests == 1 {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"pagination": {"has_more_items": true, "continuation": "cursor"},
				"orders": [{"id": "order-1"}]
			}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	orders, err := client.ListOrders(context.Background(), "test-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServerError)
	assert.Nil(t, orders, "no partial results on failure")
}

func TestClient_ListOrders_MissingContinuation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"pagination": {"has_more_items": true},
			"orders": [{"id": "order-1"}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.ListOrders(context.Background(), "test-token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no continuation")
}

func TestClient_ListOrders_RateLimitedRecordsBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.ListOrders(context.Background(), "test-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.False(t, client.rateLimiter.Allow(), "429 should set a backoff period")
}

func TestClient_ListOrders_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pagination": `))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.ListOrders(context.Background(), "test-token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode orders response")
}

func TestClient_ListOrders_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pagination": {"has_more_items": false}, "orders": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListOrders(ctx, "test-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		value    string
		expected int
	}{
		{"", 0},
		{"30", 30},
		{"not-a-number", 0},
		{"120", 120},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseRetryAfter(tt.value))
	}
}

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// fastBackoff keeps retry semantics intact while shrinking delays so the
// timing-sensitive tests stay quick.
func fastBackoff() Option {
	return WithRetryBackoff(10*time.Millisecond, 40*time.Millisecond)
}

func TestNew(t *testing.T) {
	t.Parallel()

	c := New("acme.myshopify.com", "shpat_token", WithRetryCount(5))

	if c == nil {
		t.Fatal("expected client to be created")
	}

	if c.ShopDomain() != "acme.myshopify.com" {
		t.Errorf("expected domain=acme.myshopify.com, got %s", c.ShopDomain())
	}

	if c.options.retryCount != 5 {
		t.Errorf("expected retryCount=5, got %d", c.options.retryCount)
	}

	if c.options.baseURL != DefaultBaseURL {
		t.Errorf("expected baseURL=%s, got %s", DefaultBaseURL, c.options.baseURL)
	}
}

func TestNew_TrimsInputs(t *testing.T) {
	t.Parallel()

	c := New("  acme.myshopify.com ", " shpat_token ")

	if c.shopDomain != "acme.myshopify.com" {
		t.Errorf("expected trimmed domain, got %q", c.shopDomain)
	}

	if c.accessToken != "shpat_token" {
		t.Errorf("expected trimmed token, got %q", c.accessToken)
	}
}

func TestBackoffDelay_DefaultSchedule(t *testing.T) {
	t.Parallel()

	c := New("acme.myshopify.com", "tok")

	expected := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	for attempt := 1; attempt <= 3; attempt++ {
		if got := c.backoffDelay(attempt); got != expected[attempt-1] {
			t.Errorf("attempt %d: expected %v, got %v", attempt, expected[attempt-1], got)
		}
	}

	// Beyond the schedule the delay stays capped
	if got := c.backoffDelay(10); got != 4*time.Second {
		t.Errorf("expected cap at 4s, got %v", got)
	}
}

func TestRequest_SendsAuthAndContentHeaders(t *testing.T) {
	t.Parallel()

	var authHeader, tokenHeader, contentType, requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		tokenHeader = r.Header.Get("X-Storesight-Access-Token")
		contentType = r.Header.Get("Content-Type")
		requestID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"total_revenue": 1}`))
	}))
	defer server.Close()

	c := New("acme.myshopify.com", "shpat_token", WithBaseURL(server.URL))

	if _, err := c.GetDashboardStats(context.Background(), "shop-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if authHeader != "Bearer shpat_token" {
		t.Errorf("expected 'Bearer shpat_token', got %s", authHeader)
	}

	if tokenHeader != "shpat_token" {
		t.Errorf("expected access token header, got %s", tokenHeader)
	}

	if contentType != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %s", contentType)
	}

	if requestID == "" {
		t.Error("expected X-Request-ID to be set")
	}
}

func TestRequest_NoAuthHeadersWithoutToken(t *testing.T) {
	t.Parallel()

	var authHeader, tokenHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		tokenHeader = r.Header.Get("X-Storesight-Access-Token")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New("acme.myshopify.com", "", WithBaseURL(server.URL))

	if _, err := c.GetDashboardStats(context.Background(), "shop-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if authHeader != "" || tokenHeader != "" {
		t.Errorf("expected no auth headers, got %q and %q", authHeader, tokenHeader)
	}
}

func TestRequest_RetriesTransientFailuresThenSucceeds(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) <= 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"total_revenue": 500.00, "total_orders": 42}`))
	}))
	defer server.Close()

	c := New("acme.myshopify.com", "tok", WithBaseURL(server.URL), fastBackoff())

	start := time.Now()
	stats, err := c.GetDashboardStats(context.Background(), "shop-1")
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalRevenue != 500.00 {
		t.Errorf("expected total_revenue=500.00, got %v", stats.TotalRevenue)
	}

	if got := calls.Load(); got != 4 {
		t.Errorf("expected exactly 4 attempts, got %d", got)
	}

	// Three backoff delays: 10ms + 20ms + 40ms
	if elapsed < 70*time.Millisecond {
		t.Errorf("expected elapsed >= 70ms of backoff, got %v", elapsed)
	}
}

func TestRequest_NonRetryableFailsImmediately(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "shop_id is required"}`))
	}))
	defer server.Close()

	c := New("acme.myshopify.com", "tok", WithBaseURL(server.URL), fastBackoff())

	_, err := c.GetDashboardStats(context.Background(), "")

	if err == nil {
		t.Fatal("expected error for 400 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}

	if apiErr.Kind != ErrorKindHTTP || apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected http 400, got %s %d", apiErr.Kind, apiErr.StatusCode)
	}

	if apiErr.Message != "shop_id is required" {
		t.Errorf("expected detail message, got %q", apiErr.Message)
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", got)
	}
}

func TestRequest_ExhaustionSurfacesFinalError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"detail": "warming up"}`))
	}))
	defer server.Close()

	c := New("acme.myshopify.com", "tok", WithBaseURL(server.URL), fastBackoff())

	_, err := c.GetDashboardStats(context.Background(), "shop-1")

	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}

	if apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected final 503, got %d", apiErr.StatusCode)
	}

	if apiErr.Message != "warming up" {
		t.Errorf("expected detail from final attempt, got %q", apiErr.Message)
	}

	if got := calls.Load(); got != 4 {
		t.Errorf("expected 4 attempts, got %d", got)
	}
}

func TestRequest_DecodeErrorNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"total_revenue": not-json`))
	}))
	defer server.Close()

	c := New("acme.myshopify.com", "tok", WithBaseURL(server.URL), fastBackoff())

	_, err := c.GetDashboardStats(context.Background(), "shop-1")

	if err == nil {
		t.Fatal("expected decode error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}

	if apiErr.Kind != ErrorKindDecode {
		t.Errorf("expected kind=decode, got %s", apiErr.Kind)
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", got)
	}
}

func TestRequest_TimeoutRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New("acme.myshopify.com", "tok",
		WithBaseURL(server.URL),
		WithTimeout(50*time.Millisecond),
		WithRetryCount(1),
		fastBackoff(),
	)

	_, err := c.GetDashboardStats(context.Background(), "shop-1")

	if err == nil {
		t.Fatal("expected timeout error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}

	if apiErr.Kind != ErrorKindTimeout {
		t.Errorf("expected kind=timeout, got %s", apiErr.Kind)
	}

	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 attempts, got %d", got)
	}
}

func TestRequest_NetworkErrorClassified(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	server.Close() // refuse all connections

	c := New("acme.myshopify.com", "tok",
		WithBaseURL(server.URL),
		WithRetryCount(1),
		fastBackoff(),
	)

	_, err := c.GetDashboardStats(context.Background(), "shop-1")

	if err == nil {
		t.Fatal("expected network error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}

	if apiErr.Kind != ErrorKindNetwork {
		t.Errorf("expected kind=network, got %s", apiErr.Kind)
	}
}

func TestSafeResult(t *testing.T) {
	t.Parallel()

	value := &DashboardStats{TotalRevenue: 10}

	if got := SafeResult(value, nil); got != value {
		t.Error("expected value to pass through on success")
	}

	if got := SafeResult(value, errors.New("boom")); got != nil {
		t.Error("expected nil on failure")
	}
}

func TestRequest_CustomHeaderForwarded(t *testing.T) {
	t.Parallel()

	var custom string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		custom = r.Header.Get("X-Custom")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New("acme.myshopify.com", "tok",
		WithBaseURL(server.URL),
		WithRequestHeader("X-Custom", "custom-value"),
	)

	if _, err := c.GetDashboardStats(context.Background(), "shop-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if custom != "custom-value" {
		t.Errorf("expected X-Custom=custom-value, got %s", custom)
	}
}

func TestRequest_ConcurrentCallsIndependent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/dashboard/stats":
			_, _ = w.Write([]byte(`{"total_revenue": 1}`))
		case "/api/dashboard/top-products":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			_ = json.NewEncoder(w).Encode(InsightsPage{Total: 3})
		}
	}))
	defer server.Close()

	c := New("acme.myshopify.com", "tok", WithBaseURL(server.URL), WithRetryCount(0))

	type outcome struct {
		ok  bool
		err error
	}

	results := make(chan outcome, 3)

	go func() {
		_, err := c.GetDashboardStats(context.Background(), "shop-1")
		results <- outcome{err == nil, err}
	}()
	go func() {
		_, err := c.GetTopProducts(context.Background(), "shop-1", 5)
		results <- outcome{err == nil, err}
	}()
	go func() {
		_, err := c.ListInsights(context.Background(), "shop-1", InsightsFilter{})
		results <- outcome{err == nil, err}
	}()

	succeeded := 0
	failed := 0
	for i := 0; i < 3; i++ {
		if r := <-results; r.ok {
			succeeded++
		} else {
			failed++
		}
	}

	// One endpoint fails, the other two still deliver
	if succeeded != 2 || failed != 1 {
		t.Errorf("expected 2 successes and 1 failure, got %d/%d", succeeded, failed)
	}
}

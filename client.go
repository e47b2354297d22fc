package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is the production backend origin used when no
	// WithBaseURL option is supplied.
	DefaultBaseURL = "https://api.storesight.app"

	// DefaultScopes is the scope string sent on shop registration.
	DefaultScopes = "read_orders,read_products,read_customers"

	// accessTokenHeader duplicates the bearer credential; the backend
	// accepts it when a proxy strips the Authorization header.
	accessTokenHeader = "X-Storesight-Access-Token"

	requestIDHeader = "X-Request-ID"
)

// endpoint describes one backend operation. Path templates use resty
// {param} placeholders. The set is static and compiled in.
type endpoint struct {
	name   string
	method string
	path   string
}

var (
	epRegisterShop   = endpoint{"register_shop", http.MethodPost, "/api/shops"}
	epGetShop        = endpoint{"get_shop", http.MethodGet, "/api/shops/{domain}"}
	epDashboardStats = endpoint{"dashboard_stats", http.MethodGet, "/api/dashboard/stats"}
	epRevenueChart   = endpoint{"revenue_chart", http.MethodGet, "/api/dashboard/revenue-chart"}
	epTopProducts    = endpoint{"top_products", http.MethodGet, "/api/dashboard/top-products"}
	epListInsights   = endpoint{"list_insights", http.MethodGet, "/api/insights"}
	epDismissInsight = endpoint{"dismiss_insight", http.MethodPost, "/api/insights/{id}/dismiss"}
	epActionInsight  = endpoint{"action_insight", http.MethodPost, "/api/insights/{id}/action"}
	epHealth         = endpoint{"health", http.MethodGet, "/health"}
)

// Client is a session-scoped handle on the Storesight API for one shop.
// Construct one per inbound request with [New]; it is safe for concurrent
// use and holds no per-call state. The health cache lives at package
// scope so it survives across sessions.
type Client struct {
	shopDomain  string
	accessToken string
	options     *Options

	rest       *resty.Client
	healthRest *resty.Client
}

// New creates a client for the given shop domain and access token. The
// token may be empty for unauthenticated probes; when present it is sent
// on every request.
func New(shopDomain, accessToken string, opts ...Option) *Client {
	options := newClientOptions()
	for _, opt := range opts {
		opt(options)
	}

	c := &Client{
		shopDomain:  strings.TrimSpace(shopDomain),
		accessToken: strings.TrimSpace(accessToken),
		options:     options,
	}

	// Health probes get their own transport: a shorter timeout and no
	// retries, so a flapping backend is observed, not waited on.
	c.rest = c.newRestClient(options.timeout, true)
	c.healthRest = c.newRestClient(options.healthTimeout, false)

	return c
}

// ShopDomain returns the domain this client was configured with.
func (c *Client) ShopDomain() string {
	return c.shopDomain
}

func (c *Client) newRestClient(timeout time.Duration, withRetries bool) *resty.Client {
	rc := resty.New().
		SetBaseURL(c.options.baseURL).
		SetTimeout(timeout).
		SetHeaders(c.options.requestHeaders)

	if c.accessToken != "" {
		rc.SetAuthToken(c.accessToken)
		rc.SetHeader(accessTokenHeader, c.accessToken)
	}

	rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		// One ID per logical call; retries reuse the request object and
		// keep the header.
		if req.Header.Get(requestIDHeader) == "" {
			req.SetHeader(requestIDHeader, uuid.NewString())
		}
		return nil
	})

	if withRetries && c.options.retryCount > 0 {
		rc.SetRetryCount(c.options.retryCount).
			SetRetryWaitTime(c.options.backoffBase).
			SetRetryMaxWaitTime(c.options.backoffMax).
			SetRetryAfter(func(_ *resty.Client, resp *resty.Response) (time.Duration, error) {
				return c.backoffDelay(resp.Request.Attempt), nil
			}).
			AddRetryCondition(c.options.retryPolicy).
			AddRetryHook(func(resp *resty.Response, err error) {
				if resp == nil {
					return
				}
				reason := any(err)
				if err == nil {
					reason = resp.Status()
				}
				c.options.requestLogger.Warnf("retrying %s %s (attempt %d): %v",
					resp.Request.Method, resp.Request.URL, resp.Request.Attempt, reason)
			})
	}

	return rc
}

// backoffDelay returns the delay inserted after the given completed
// attempt: the base delay doubled per attempt, capped at the configured
// maximum. With defaults that is 1s, 2s, 4s.
func (c *Client) backoffDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := c.options.backoffBase << (attempt - 1)
	if delay <= 0 || delay > c.options.backoffMax {
		delay = c.options.backoffMax
	}
	return delay
}

// requestParams carries the per-call inputs of one endpoint invocation.
type requestParams struct {
	pathParams  map[string]string
	queryParams map[string]string
	body        any
}

// doRequest issues one resilient call through rc and decodes the 2xx body
// into T. It is the single funnel every typed endpoint wrapper goes
// through; retries and backoff happen inside the resty execution, so by
// the time it returns the outcome is final.
func doRequest[T any](ctx context.Context, c *Client, rc *resty.Client, ep endpoint, p requestParams) (*T, error) {
	start := time.Now()

	req := rc.R().SetContext(ctx)
	if len(p.pathParams) > 0 {
		req.SetPathParams(p.pathParams)
	}
	if len(p.queryParams) > 0 {
		req.SetQueryParams(p.queryParams)
	}
	if p.body != nil {
		req.SetBody(p.body)
	}

	resp, err := req.Execute(ep.method, ep.path)

	attempts := 1
	status := 0
	if resp != nil {
		attempts = resp.Request.Attempt
		status = resp.StatusCode()
	}

	if err != nil {
		apiErr := classifyTransportError(err)
		c.observe(ep, status, start, attempts, apiErr)
		c.options.requestLogger.Errorf("%s %s failed after %d attempt(s): %v",
			ep.method, ep.path, attempts, apiErr)
		return nil, apiErr
	}

	if !resp.IsSuccess() {
		apiErr := newHTTPError(resp.StatusCode(), resp.Body())
		c.observe(ep, status, start, attempts, apiErr)
		c.options.requestLogger.Errorf("%s %s failed after %d attempt(s): %v",
			ep.method, ep.path, attempts, apiErr)
		return nil, apiErr
	}

	var out T
	if body := resp.Body(); len(body) > 0 {
		if uerr := json.Unmarshal(body, &out); uerr != nil {
			apiErr := newDecodeError(uerr)
			c.observe(ep, status, start, attempts, apiErr)
			c.options.requestLogger.Errorf("%s %s returned an undecodable body: %v",
				ep.method, ep.path, uerr)
			return nil, apiErr
		}
	}

	c.observe(ep, status, start, attempts, nil)
	c.options.requestLogger.Debugf("%s %s succeeded in %s (%d attempt(s))",
		ep.method, ep.path, time.Since(start), attempts)

	return &out, nil
}

func (c *Client) observe(ep endpoint, status int, start time.Time, attempts int, apiErr *APIError) {
	m := c.options.metrics
	if m == nil {
		return
	}
	m.recordRequest(ep.method, ep.name, status, time.Since(start))
	if attempts > 1 {
		m.recordRetries(ep.name, attempts-1)
	}
	if apiErr != nil {
		m.recordError(string(apiErr.Kind))
	}
}

// SafeResult is the absorbing variant of a typed call for callers who
// prefer a nil result over a propagated error. The request engine has
// already logged the failure by the time it is discarded here.
//
//	stats := client.SafeResult(c.GetDashboardStats(ctx, shopID))
func SafeResult[T any](v *T, err error) *T {
	if err != nil {
		return nil
	}
	return v
}

package client

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type Option func(*Options)

type Options struct {
	baseURL            string
	timeout            time.Duration
	healthTimeout      time.Duration
	healthCacheTTL     time.Duration
	retryCount         int
	backoffBase        time.Duration
	backoffMax         time.Duration
	retryPolicy        func(*resty.Response, error) bool
	requestLogger      RequestLogger
	metrics            *MetricsCollector
	requestHeaders     map[string]string
	registrationScopes string
}

func newClientOptions() *Options {
	return &Options{
		baseURL:        DefaultBaseURL,
		timeout:        10 * time.Second,
		healthTimeout:  5 * time.Second,
		healthCacheTTL: time.Minute,
		retryCount:     3,
		backoffBase:    time.Second,
		backoffMax:     4 * time.Second,
		retryPolicy:    DefaultRetryPolicy,
		requestLogger:  &NoopLogger{},
		requestHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		registrationScopes: DefaultScopes,
	}
}

// WithBaseURL overrides the production backend origin. Empty values are
// ignored.
func WithBaseURL(baseURL string) Option {
	return func(o *Options) {
		baseURL = strings.TrimSpace(baseURL)
		if baseURL != "" {
			o.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout sets the per-attempt timeout for data requests.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHealthTimeout sets the per-attempt timeout for the health probe,
// independent of the data request timeout.
func WithHealthTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout > 0 {
			o.healthTimeout = timeout
		}
	}
}

// WithHealthCacheTTL sets how long a cached health status is served before
// a fresh probe is issued.
func WithHealthCacheTTL(ttl time.Duration) Option {
	return func(o *Options) {
		if ttl > 0 {
			o.healthCacheTTL = ttl
		}
	}
}

// WithRetryCount sets the number of retries after the initial attempt.
// Zero disables retries entirely.
func WithRetryCount(count int) Option {
	return func(o *Options) {
		if count >= 0 {
			o.retryCount = count
		}
	}
}

// WithRetryBackoff sets the first backoff delay and its cap. The delay
// doubles after every failed attempt until it reaches maxDelay.
func WithRetryBackoff(base, maxDelay time.Duration) Option {
	return func(o *Options) {
		if base > 0 && maxDelay >= base {
			o.backoffBase = base
			o.backoffMax = maxDelay
		}
	}
}

// WithRetryPolicy overrides [DefaultRetryPolicy].
func WithRetryPolicy(policy func(*resty.Response, error) bool) Option {
	return func(o *Options) {
		if policy != nil {
			o.retryPolicy = policy
		}
	}
}

// WithRequestLogger supplies a logger for request lifecycle events.
func WithRequestLogger(logger RequestLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.requestLogger = logger
		}
	}
}

// WithMetrics attaches a prometheus collector. Without one, no metrics are
// recorded.
func WithMetrics(metrics *MetricsCollector) Option {
	return func(o *Options) {
		if metrics != nil {
			o.metrics = metrics
		}
	}
}

// WithRequestHeader adds a header to every outgoing request. Content-Type,
// Accept, and auth headers cannot be overridden.
func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" ||
			strings.EqualFold(header, "Content-Type") ||
			strings.EqualFold(header, "Accept") ||
			strings.EqualFold(header, "Authorization") ||
			strings.EqualFold(header, accessTokenHeader) {
			return
		}

		o.requestHeaders[header] = value
	}
}

// WithScopes overrides the scope string sent on shop registration.
func WithScopes(scopes string) Option {
	return func(o *Options) {
		scopes = strings.TrimSpace(scopes)
		if scopes != "" {
			o.registrationScopes = scopes
		}
	}
}

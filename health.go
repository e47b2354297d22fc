package client

import (
	"context"
	"strings"
	"sync"
	"time"
)

// sharedHealth is the process-wide cache of the last health probe, one
// entry per backend origin. Clients are constructed per session, so the
// cell lives here rather than on [Client]: a fresh client still sees the
// probe its predecessors made. The mutex guards the refresh decision and
// the write; the probe itself runs unlocked, so two goroutines racing a
// stale entry may both probe and the last write wins. That race is
// harmless: both observe the same backend within milliseconds.
var sharedHealth = struct {
	mu       sync.Mutex
	statuses map[string]*HealthStatus
}{statuses: make(map[string]*HealthStatus)}

// Ping issues one uncached probe of the backend's /health endpoint. Unlike
// data requests it is never retried and uses the shorter health timeout.
func (c *Client) Ping(ctx context.Context) (*BackendHealth, error) {
	return doRequest[BackendHealth](ctx, c, c.healthRest, epHealth, requestParams{})
}

// CheckHealth reports backend availability. The cache is process-wide
// and shared by every client pointed at the same backend origin: a cached
// status younger than the health cache TTL (60s by default) is returned
// without any network call; otherwise a fresh probe is issued and its
// result, success or failure, overwrites the cache so a flapping backend
// cannot pin a stale healthy entry. CheckHealth never returns an error:
// every failure is folded into a healthy=false status.
//
// The result is advisory. It does not gate data requests.
func (c *Client) CheckHealth(ctx context.Context) HealthStatus {
	sharedHealth.mu.Lock()
	if s := sharedHealth.statuses[c.options.baseURL]; s != nil && time.Since(s.CheckedAt) < c.options.healthCacheTTL {
		sharedHealth.mu.Unlock()
		if m := c.options.metrics; m != nil {
			m.recordHealthCacheHit()
		}
		return *s
	}
	sharedHealth.mu.Unlock()

	fresh := c.probeHealth(ctx)

	sharedHealth.mu.Lock()
	sharedHealth.statuses[c.options.baseURL] = &fresh
	sharedHealth.mu.Unlock()

	return fresh
}

func (c *Client) probeHealth(ctx context.Context) HealthStatus {
	if m := c.options.metrics; m != nil {
		m.recordHealthCacheMiss()
	}

	status := HealthStatus{CheckedAt: time.Now()}

	body, err := c.Ping(ctx)
	if err != nil {
		status.Error = err.Error()
		c.options.requestLogger.Warnf("backend health probe failed: %v", err)
	} else {
		status.Healthy = body.Status == "" || strings.EqualFold(body.Status, "ok") ||
			strings.EqualFold(body.Status, "healthy")
		status.BackendVersion = body.Version
		if !status.Healthy {
			status.Error = "backend reported status " + body.Status
		}
	}

	if m := c.options.metrics; m != nil {
		m.recordHealthProbe(status.Healthy)
	}

	return status
}

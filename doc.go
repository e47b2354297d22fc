// Package client provides an HTTP client for the Storesight analytics API.
//
// The client wraps [github.com/go-resty/resty/v2] with automatic retries on
// transient failures, a TTL-cached backend health probe, shop identifier
// resolution with fallback registration, and pluggable logging and metrics.
//
// # Basic Usage
//
//	c := client.New("acme.myshopify.com", "shpat_xxx",
//	    client.WithBaseURL("https://api.storesight.app"),
//	)
//
//	shopID, ok := c.ResolveShopID(ctx)
//	if !ok {
//	    // tenant not usable yet; render without shop-scoped data
//	    return
//	}
//
//	stats, err := c.GetDashboardStats(ctx, shopID)
//	if err != nil {
//	    // show placeholder content; err is a *client.APIError
//	}
//
// # Configuration
//
// All configuration is supplied as [Option] functions passed to [New].
// Invalid values are silently ignored and the default is retained.
//
// # Retry Behaviour
//
// Every data request is attempted up to four times: the initial attempt plus
// three retries, with fixed backoff delays of 1s, 2s, and 4s between attempts.
// [DefaultRetryPolicy] retries on per-attempt timeouts, connection-level
// network errors, and HTTP 5xx responses. Client errors (4xx), malformed
// response bodies, and caller cancellation are never retried. Supply a custom
// function via [WithRetryPolicy] to override this behaviour.
//
// Failures surface as [*APIError] values tagged with an [ErrorKind], so
// callers can branch on the failure class without inspecting message text.
//
// # Authentication
//
// The access token passed to [New] is attached to every request as both a
// standard bearer Authorization header and the vendor X-Storesight-Access-Token
// header. The backend accepts either; sending both guards against proxies
// that strip one of them.
//
// # Health Cache
//
// [Client.CheckHealth] reports backend availability from a process-wide
// cache with a 60s TTL, shared by all clients of the same backend origin
// so per-session clients do not re-probe on every page render. It never
// returns an error; it is advisory only and does not gate data requests.
// [Client.Ping] issues an uncached probe.
//
// # Logging
//
// Implement [RequestLogger] and supply it via [WithRequestLogger] to
// integrate with your logging library, or use [NewLogrusLogger] for a
// ready-made logrus adapter. The default [NoopLogger] discards all output.
// Ensure your implementation redacts access tokens before persisting logs.
package client

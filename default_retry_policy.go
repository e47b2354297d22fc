package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// DefaultRetryPolicy is the default retry condition used by [Client]. It
// retries on per-attempt timeouts, transient connection errors, and HTTP
// 5xx server errors. It does not retry on caller cancellation, on 4xx
// client errors, or on any successful response.
//
// Supply a custom function via [WithRetryPolicy] to override this behaviour.
func DefaultRetryPolicy(r *resty.Response, err error) bool {
	if err != nil {
		// Don't retry when the caller gave up; the per-attempt timeout
		// also surfaces as DeadlineExceeded, so only an explicit cancel
		// stops the retry loop here.
		if errors.Is(err, context.Canceled) {
			return false
		}

		// Timeouts and connection errors are transient
		return true
	}

	return r.StatusCode() >= http.StatusInternalServerError
}

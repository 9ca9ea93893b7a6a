// Package httpx carries the shared HTTP plumbing: middleware chaining,
// JSON response helpers and rate limiting.
package httpx

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Chain wraps h with the given middlewares. The first middleware listed is
// the outermost, so Chain(h, logging, ratelimit) logs every request,
// including the rate-limited ones.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

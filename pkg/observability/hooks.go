// Package observability provides hooks for tracing and logging RPC traffic.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. The library never logs on its own; it
// reports each outgoing request through the registered [HTTPHooks] and the
// application decides what to do with the events.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Clients call hooks to emit events:
//
//	observability.HTTP().OnRequest(ctx, id, http.MethodGet, host, path)
//	// ... do request ...
//	observability.HTTP().OnResponse(ctx, id, http.MethodGet, host, path, status, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// HTTPHooks receives events from HTTP client operations.
// The id argument is unique per request and ties the events of one call together.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, id, method, host, path string)

	// OnResponse records an HTTP response, whatever its status.
	OnResponse(ctx context.Context, id, method, host, path string, statusCode int, duration time.Duration)

	// OnError records a failed exchange (network failure, timeout, bad status, bad body).
	OnError(ctx context.Context, id, method, host, path string, err error)
}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string, string) {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, string, int, time.Duration) {
}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, string, error) {}

var (
	httpHooks HTTPHooks = NoopHTTPHooks{}
	hooksMu   sync.RWMutex
)

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
// A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	httpHooks = NoopHTTPHooks{}
}

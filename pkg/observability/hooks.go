// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about registry
// queries, response cache lookups and HTTP calls, without the client
// depending on a specific observability backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRegistryHooks(&myRegistryHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Registry().OnQueryStart(ctx, "search")
//	// ... query ...
//	observability.Registry().OnQueryComplete(ctx, "search", len(companies), duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Registry Hooks
// =============================================================================

// RegistryHooks receives events from registry client operations.
type RegistryHooks interface {
	// OnQueryStart records the start of an operation such as "search" or
	// "base_profile".
	OnQueryStart(ctx context.Context, operation string)

	// OnQueryComplete records the outcome of an operation. results is the
	// number of companies returned.
	OnQueryComplete(ctx context.Context, operation string, results int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the response cache.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, key string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, key string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, key string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnThrottle records time spent waiting before a request could start.
	OnThrottle(ctx context.Context, host string, wait time.Duration)

	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRegistryHooks is a no-op implementation of RegistryHooks.
type NoopRegistryHooks struct{}

func (NoopRegistryHooks) OnQueryStart(context.Context, string)                               {}
func (NoopRegistryHooks) OnQueryComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnThrottle(context.Context, string, time.Duration)                      {}
func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	registryHooks RegistryHooks = NoopRegistryHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetRegistryHooks registers custom registry hooks.
// This should be called once at application startup before any queries.
func SetRegistryHooks(h RegistryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		registryHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Registry returns the registered registry hooks.
func Registry() RegistryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return registryHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	registryHooks = NoopRegistryHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}

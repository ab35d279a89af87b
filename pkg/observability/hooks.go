// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without making the network
// core depend on a specific observability backend. Consumers register hooks
// at startup to receive events about network mutations, serialization, the
// revision history, the artifact cache and the HTTP API.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// [Metrics] is the Prometheus-backed implementation used by the serve
// command; it implements every hook interface.
//
// # Usage
//
// Register hooks at application startup:
//
//	m, err := observability.NewMetrics(prometheus.NewRegistry())
//	if err != nil {
//	    return err
//	}
//	observability.SetNetworkHooks(m)
//	observability.SetAPIHooks(m)
//
// Libraries call hooks to emit events:
//
//	observability.Network().OnMutation("delete-node", len(nodes), len(connections))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Network Hooks
// =============================================================================

// NetworkHooks receives events from the network core. Calls are synchronous
// and happen on the mutating goroutine, so implementations must be cheap.
type NetworkHooks interface {
	// OnMutation records a committed structural or value mutation with the
	// resulting graph size.
	OnMutation(op string, nodeCount, connectionCount int)

	// OnExport records a serialization to one of the two targets.
	OnExport(target string, nodeCount int, duration time.Duration)

	// OnUnknownModel records a model id that did not resolve.
	OnUnknownModel(modelID string)
}

// =============================================================================
// History Hooks
// =============================================================================

// HistoryHooks receives events from the revision history.
type HistoryHooks interface {
	// OnCommit records a stored revision and the resulting depth.
	OnCommit(revisions int)

	// OnNavigate records a move through the history.
	OnNavigate(direction string, index int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// API Hooks
// =============================================================================

// APIHooks receives events from the HTTP API.
type APIHooks interface {
	// OnRequest records a handled request by route pattern.
	OnRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopNetworkHooks is a no-op implementation of NetworkHooks.
type NoopNetworkHooks struct{}

func (NoopNetworkHooks) OnMutation(string, int, int) {}

func (NoopNetworkHooks) OnExport(string, int, time.Duration) {}

func (NoopNetworkHooks) OnUnknownModel(string) {}

// NoopHistoryHooks is a no-op implementation of HistoryHooks.
type NoopHistoryHooks struct{}

func (NoopHistoryHooks) OnCommit(int) {}

func (NoopHistoryHooks) OnNavigate(string, int) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string) {}

func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}

func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopAPIHooks is a no-op implementation of APIHooks.
type NoopAPIHooks struct{}

func (NoopAPIHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	networkHooks NetworkHooks = NoopNetworkHooks{}
	historyHooks HistoryHooks = NoopHistoryHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	apiHooks     APIHooks     = NoopAPIHooks{}
	hooksMu      sync.RWMutex
)

// SetNetworkHooks registers custom network hooks.
// This should be called once at application startup before any network is built.
func SetNetworkHooks(h NetworkHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		networkHooks = h
	}
}

// SetHistoryHooks registers custom history hooks.
func SetHistoryHooks(h HistoryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		historyHooks = h
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

// SetAPIHooks registers custom API hooks.
func SetAPIHooks(h APIHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		apiHooks = h
	}
}

// Network returns the registered network hooks.
func Network() NetworkHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return networkHooks
}

// History returns the registered history hooks.
func History() HistoryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return historyHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// API returns the registered API hooks.
func API() APIHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return apiHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	networkHooks = NoopNetworkHooks{}
	historyHooks = NoopHistoryHooks{}
	cacheHooks = NoopCacheHooks{}
	apiHooks = NoopAPIHooks{}
}

// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about detection runs, search progress, rater cache
// activity, and API requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the core packages never
// import an observability backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSearchHooks(&mySearchHooks{})
//	    observability.SetRaterHooks(&myRaterHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Search().OnSearchStart("genetic", edgeCount)
//	// ... search ...
//	observability.Search().OnSearchComplete("genetic", best, duration)
//
// Search and rater hooks carry no context: the core search loop is
// synchronous and context-free.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the detection pipeline.
type PipelineHooks interface {
	// OnDetectStart records the start of a detection run for one sheet.
	OnDetectStart(ctx context.Context, sheet string, regions int)

	// OnDetectComplete records the end of a detection run.
	OnDetectComplete(ctx context.Context, sheet string, tables int, duration time.Duration, err error)
}

// =============================================================================
// Search Hooks
// =============================================================================

// SearchHooks receives events from partition search strategies.
type SearchHooks interface {
	// OnSearchStart records the start of a search over a graph with the given
	// number of edges.
	OnSearchStart(strategy string, edges int)

	// OnGeneration records the hall-of-fame score after a genetic generation.
	OnGeneration(generation int, best float64)

	// OnSearchComplete records the final best score.
	OnSearchComplete(strategy string, best float64, duration time.Duration)
}

// =============================================================================
// Rater Hooks
// =============================================================================

// RaterHooks receives events from the fitness rater score cache.
type RaterHooks interface {
	// OnCacheHit records a metric score served from cache.
	OnCacheHit(metric string)

	// OnCacheMiss records a metric score that had to be computed.
	OnCacheMiss(metric string)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response written for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnDetectStart(context.Context, string, int) {}
func (NoopPipelineHooks) OnDetectComplete(context.Context, string, int, time.Duration, error) {
}

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnSearchStart(string, int)                       {}
func (NoopSearchHooks) OnGeneration(int, float64)                       {}
func (NoopSearchHooks) OnSearchComplete(string, float64, time.Duration) {}

// NoopRaterHooks is a no-op implementation of RaterHooks.
type NoopRaterHooks struct{}

func (NoopRaterHooks) OnCacheHit(string)  {}
func (NoopRaterHooks) OnCacheMiss(string) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                     {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	searchHooks   SearchHooks   = NoopSearchHooks{}
	raterHooks    RaterHooks    = NoopRaterHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any detection runs.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetSearchHooks registers custom search hooks.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// SetRaterHooks registers custom rater hooks.
func SetRaterHooks(h RaterHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		raterHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving requests.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Rater returns the registered rater hooks.
func Rater() RaterHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return raterHooks
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
	pipelineHooks = NoopPipelineHooks{}
	searchHooks = NoopSearchHooks{}
	raterHooks = NoopRaterHooks{}
	httpHooks = NoopHTTPHooks{}
}

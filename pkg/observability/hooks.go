// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about figure construction, the
// pre-render build step, and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetFigureHooks(&myFigureHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Figure().OnBuildStart(ctx, datasetID)
//	// ... resolve mappings ...
//	observability.Figure().OnBuildComplete(ctx, datasetID, traceCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Figure Hooks
// =============================================================================

// FigureHooks receives events from figure construction and the pre-render
// build step.
type FigureHooks interface {
	// Construction events
	OnConstruct(ctx context.Context, datasetID string, mappingCount int)
	OnDeprecatedOption(ctx context.Context, key string)

	// Build events (pre-render mapping resolution)
	OnBuildStart(ctx context.Context, datasetID string)
	OnBuildComplete(ctx context.Context, datasetID string, traceCount int, duration time.Duration, err error)
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
// No-op Implementations
// =============================================================================

// NoopFigureHooks is a no-op implementation of FigureHooks.
type NoopFigureHooks struct{}

func (NoopFigureHooks) OnConstruct(context.Context, string, int)                           {}
func (NoopFigureHooks) OnDeprecatedOption(context.Context, string)                         {}
func (NoopFigureHooks) OnBuildStart(context.Context, string)                               {}
func (NoopFigureHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Registration
// =============================================================================

var (
	mu          sync.RWMutex
	figureHooks FigureHooks = NoopFigureHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
)

// SetFigureHooks registers figure hooks. Call once at startup, before any
// figures are constructed. Passing nil restores the no-op hooks.
func SetFigureHooks(h FigureHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		figureHooks = NoopFigureHooks{}
		return
	}
	figureHooks = h
}

// SetCacheHooks registers cache hooks. Call once at startup.
// Passing nil restores the no-op hooks.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		cacheHooks = NoopCacheHooks{}
		return
	}
	cacheHooks = h
}

// Figure returns the registered figure hooks.
func Figure() FigureHooks {
	mu.RLock()
	defer mu.RUnlock()
	return figureHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}

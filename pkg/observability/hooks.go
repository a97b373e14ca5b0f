// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about pipeline stages and individual
// optimization passes.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach avoids import cycles (hooks are registered by main, not by
// libraries) and keeps the core free of observability frameworks; the
// metrics package provides a Prometheus-backed implementation.
//
// # Usage
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the compilation pipeline.
type PipelineHooks interface {
	// Parse events
	OnParseStart(ctx context.Context, source string)
	OnParseComplete(ctx context.Context, qubits, gates int, duration time.Duration, err error)

	// Optimize events
	OnOptimizeStart(ctx context.Context, gates int)
	OnOptimizeComplete(ctx context.Context, gatesBefore, gatesAfter int, duration time.Duration, err error)

	// Route events
	OnRouteStart(ctx context.Context, gates, physicalQubits int)
	OnRouteComplete(ctx context.Context, swaps, finalDepth int, duration time.Duration, err error)
}

// PassHooks receives events from individual optimization passes.
type PassHooks interface {
	// OnPassComplete records one pass run and its gate-count deltas.
	OnPassComplete(ctx context.Context, name string, removed, added int)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnParseComplete(context.Context, int, int, time.Duration, error)    {}
func (NoopPipelineHooks) OnOptimizeStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnOptimizeComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRouteStart(context.Context, int, int)                             {}
func (NoopPipelineHooks) OnRouteComplete(context.Context, int, int, time.Duration, error)    {}

// NoopPassHooks is a no-op implementation of PassHooks.
type NoopPassHooks struct{}

func (NoopPassHooks) OnPassComplete(context.Context, string, int, int) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	passHooks     PassHooks     = NoopPassHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetPassHooks registers custom pass hooks.
// This should be called once at application startup.
func SetPassHooks(h PassHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		passHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Pass returns the registered pass hooks.
func Pass() PassHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return passHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	passHooks = NoopPassHooks{}
}

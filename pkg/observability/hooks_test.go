package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnParseStart(ctx, "qreg q[2];")
	p.OnParseComplete(ctx, 2, 10, time.Second, nil)
	p.OnOptimizeStart(ctx, 10)
	p.OnOptimizeComplete(ctx, 10, 6, time.Second, nil)
	p.OnRouteStart(ctx, 6, 9)
	p.OnRouteComplete(ctx, 3, 12, time.Second, nil)

	ph := NoopPassHooks{}
	ph.OnPassComplete(ctx, "CancellationPass", 4, 0)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Pass().(NoopPassHooks); !ok {
		t.Error("Pass() should return NoopPassHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customPass := &testPassHooks{}
	SetPassHooks(customPass)
	if Pass() != customPass {
		t.Error("SetPassHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testPassHooks struct{ NoopPassHooks }

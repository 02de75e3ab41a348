package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	// Must not panic
	ctx := context.Background()
	Pipeline().OnBuildStart(ctx, 7)
	Pipeline().OnBuildComplete(ctx, 5, 7, time.Millisecond, nil)
	Pipeline().OnRenderStart(ctx, []string{"text"})
	Pipeline().OnRenderComplete(ctx, []string{"text"}, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "graph")
	Cache().OnCacheMiss(ctx, "graph")
	Cache().OnCacheSet(ctx, "graph", 128)
}

func TestSetHooks(t *testing.T) {
	defer Reset()

	collector := NewCollector()
	SetPipelineHooks(collector)
	SetCacheHooks(collector)

	if Pipeline() != PipelineHooks(collector) {
		t.Error("SetPipelineHooks should replace the registered hooks")
	}
	if Cache() != CacheHooks(collector) {
		t.Error("SetCacheHooks should replace the registered hooks")
	}

	// nil registrations are ignored
	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(collector) {
		t.Error("SetPipelineHooks(nil) should keep existing hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset should restore noop hooks")
	}
}

func TestCollector(t *testing.T) {
	ctx := context.Background()
	c := NewCollector()

	c.OnBuildComplete(ctx, 5, 7, time.Millisecond, nil)
	c.OnBuildComplete(ctx, 0, 0, time.Millisecond, errors.New("boom"))
	c.OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)
	c.OnCacheHit(ctx, "graph")
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "graph")
	c.OnCacheSet(ctx, "graph", 256)

	snap := c.Snapshot()
	if snap.Builds != 2 {
		t.Errorf("Builds = %d, want 2", snap.Builds)
	}
	if snap.BuildErrors != 1 {
		t.Errorf("BuildErrors = %d, want 1", snap.BuildErrors)
	}
	if snap.Renders != 1 {
		t.Errorf("Renders = %d, want 1", snap.Renders)
	}
	if snap.RenderErrors != 0 {
		t.Errorf("RenderErrors = %d, want 0", snap.RenderErrors)
	}
	if snap.CacheHits != 2 || snap.CacheMisses != 1 || snap.CacheSets != 1 {
		t.Errorf("cache counters = %d/%d/%d, want 2/1/1",
			snap.CacheHits, snap.CacheMisses, snap.CacheSets)
	}
}

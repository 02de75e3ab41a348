package observability

import (
	"context"
	"sync"
	"time"
)

// Collector is an in-memory counter backend implementing both
// PipelineHooks and CacheHooks. The API's stats endpoint reads its
// snapshot; heavier backends can replace it via the hook registry.
type Collector struct {
	mu sync.Mutex

	builds       int64
	buildErrors  int64
	renders      int64
	renderErrors int64
	cacheHits    int64
	cacheMisses  int64
	cacheSets    int64
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Snapshot is a point-in-time copy of the collector's counters.
type Snapshot struct {
	Builds       int64 `json:"builds"`
	BuildErrors  int64 `json:"build_errors"`
	Renders      int64 `json:"renders"`
	RenderErrors int64 `json:"render_errors"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
	CacheSets    int64 `json:"cache_sets"`
}

// Snapshot returns a copy of the current counters.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Builds:       c.builds,
		BuildErrors:  c.buildErrors,
		Renders:      c.renders,
		RenderErrors: c.renderErrors,
		CacheHits:    c.cacheHits,
		CacheMisses:  c.cacheMisses,
		CacheSets:    c.cacheSets,
	}
}

// OnBuildStart implements PipelineHooks.
func (c *Collector) OnBuildStart(ctx context.Context, kmerCount int) {}

// OnBuildComplete implements PipelineHooks.
func (c *Collector) OnBuildComplete(ctx context.Context, nodeCount, edgeCount int, duration time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builds++
	if err != nil {
		c.buildErrors++
	}
}

// OnRenderStart implements PipelineHooks.
func (c *Collector) OnRenderStart(ctx context.Context, formats []string) {}

// OnRenderComplete implements PipelineHooks.
func (c *Collector) OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renders++
	if err != nil {
		c.renderErrors++
	}
}

// OnCacheHit implements CacheHooks.
func (c *Collector) OnCacheHit(ctx context.Context, keyType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cacheHits++
}

// OnCacheMiss implements CacheHooks.
func (c *Collector) OnCacheMiss(ctx context.Context, keyType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cacheMisses++
}

// OnCacheSet implements CacheHooks.
func (c *Collector) OnCacheSet(ctx context.Context, keyType string, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cacheSets++
}

// Ensure Collector implements both hook interfaces.
var (
	_ PipelineHooks = (*Collector)(nil)
	_ CacheHooks    = (*Collector)(nil)
)

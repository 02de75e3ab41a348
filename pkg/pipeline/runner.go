package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/graphomics/debruijn/pkg/cache"
	"github.com/graphomics/debruijn/pkg/debruijn"
	"github.com/graphomics/debruijn/pkg/graphio"
	"github.com/graphomics/debruijn/pkg/kmer"
	"github.com/graphomics/debruijn/pkg/observability"
	"github.com/graphomics/debruijn/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1+2: Load and build
	buildStart := time.Now()
	g, buildHit, err := r.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.KmerCount = g.EdgeCount()
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.BuildHit = buildHit

	// Compute graph hash for cache keys and API responses
	if graphData, err := graphio.Marshal(g); err == nil {
		result.GraphHash = cache.Hash(graphData)
	}

	r.Logger.Info("built graph",
		"k", g.K(),
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadKmers materializes the input k-mer list from opts: either the
// explicit Kmers slice or the k-mer composition of Sequence.
func (r *Runner) LoadKmers(opts Options) ([]string, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}
	if opts.Sequence != "" {
		return kmer.Composition(opts.Sequence, opts.K)
	}
	return opts.Kmers, nil
}

// BuildWithCacheInfo constructs the graph with caching and returns cache hit info.
// The cached payload is the adjacency JSON, keyed by a hash of the
// canonical input list and the build options.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (*debruijn.Graph, bool, error) {
	kmers, err := r.LoadKmers(opts)
	if err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	inputData, _ := json.Marshal(kmers)
	cacheKey := r.Keyer.GraphKey(cache.Hash(inputData), opts.GraphKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := graphio.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return g, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	// Build
	observability.Pipeline().OnBuildStart(ctx, len(kmers))
	start := time.Now()
	g, err := debruijn.Build(kmers, opts.BuildOptions()...)
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, 0, 0, time.Since(start), err)
		return nil, false, err
	}
	observability.Pipeline().OnBuildComplete(ctx, g.NodeCount(), g.EdgeCount(), time.Since(start), nil)

	// Cache the result
	if data, err := graphio.Marshal(g); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph); err == nil {
			observability.Cache().OnCacheSet(ctx, "graph", len(data))
		}
	}

	return g, false, nil // Cache miss
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, opts Options) (*debruijn.Graph, error) {
	g, _, err := r.BuildWithCacheInfo(ctx, opts)
	return g, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *debruijn.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from the serialized graph
	graphData, err := graphio.Marshal(g)
	if err != nil {
		return nil, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	graphHash := cache.Hash(graphData)

	// Try to get all formats from cache (unless refresh requested)
	if !opts.Refresh {
		artifacts := make(map[string][]byte)
		allCached := true
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Render all formats
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.renderFormat(ctx, g, format, opts)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		rendered[format] = data
	}
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *debruijn.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// renderFormat produces a single artifact. SVG-derived formats (png,
// pdf) render the SVG first and convert from it.
func (r *Runner) renderFormat(ctx context.Context, g *debruijn.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatText:
		return []byte(render.Text(g)), nil
	case FormatJSON:
		return graphio.Marshal(g)
	case FormatDOT:
		return []byte(render.ToDOT(g, render.DOTOptions{Rankdir: opts.Rankdir})), nil
	case FormatSVG:
		return render.SVG(ctx, render.ToDOT(g, render.DOTOptions{Rankdir: opts.Rankdir}))
	case FormatPNG:
		svg, err := render.SVG(ctx, render.ToDOT(g, render.DOTOptions{Rankdir: opts.Rankdir}))
		if err != nil {
			return nil, err
		}
		return render.PNG(ctx, svg, DefaultPNGScale)
	case FormatPDF:
		svg, err := render.SVG(ctx, render.ToDOT(g, render.DOTOptions{Rankdir: opts.Rankdir}))
		if err != nil {
			return nil, err
		}
		return render.PDF(ctx, svg)
	default:
		return nil, ValidateFormat(format)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphomics/debruijn/pkg/cache"
	apperrors "github.com/graphomics/debruijn/pkg/errors"
)

var classicKmers = []string{"GAGG", "CAGG", "GGGG", "GGGA", "CAGG", "AGGG", "GGAG"}

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	require.NotNil(t, r.Cache, "nil cache should become a NullCache")
	require.NotNil(t, r.Keyer, "nil keyer should become a DefaultKeyer")
	require.NotNil(t, r.Logger)
}

func TestLoadKmers(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	kmers, err := r.LoadKmers(Options{Kmers: classicKmers})
	require.NoError(t, err)
	require.Equal(t, classicKmers, kmers)

	kmers, err = r.LoadKmers(Options{Sequence: "CAATCC", K: 3})
	require.NoError(t, err)
	require.Equal(t, []string{"CAA", "AAT", "ATC", "TCC"}, kmers)

	_, err = r.LoadKmers(Options{})
	require.Error(t, err)
}

func TestBuildWithCacheInfo(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	opts := Options{Kmers: classicKmers}

	// First build misses the cache
	g, hit, err := r.BuildWithCacheInfo(ctx, opts)
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, 7, g.EdgeCount())

	// Second build hits and produces the same graph
	cached, hit, err := r.BuildWithCacheInfo(ctx, opts)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, g.Adjacency(), cached.Adjacency())

	// Refresh bypasses the cache read
	_, hit, err = r.BuildWithCacheInfo(ctx, Options{Kmers: classicKmers, Refresh: true})
	require.NoError(t, err)
	require.False(t, hit)
}

func TestBuildCacheKeySeparation(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)

	// Prime the cache for a permissive build of a degenerate input.
	_, hit, err := r.BuildWithCacheInfo(ctx, Options{Kmers: []string{"A", "T"}, Permissive: true})
	require.NoError(t, err)
	require.False(t, hit)

	// A strict build of the same input must not reuse that entry.
	_, _, err = r.BuildWithCacheInfo(ctx, Options{Kmers: []string{"A", "T"}})
	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidInput))
}

func TestRenderWithCacheInfo(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)

	g, err := r.Build(ctx, Options{Kmers: classicKmers})
	require.NoError(t, err)

	opts := Options{Kmers: classicKmers, Formats: []string{FormatText, FormatDOT}}

	artifacts, hit, err := r.RenderWithCacheInfo(ctx, g, opts)
	require.NoError(t, err)
	require.False(t, hit)
	require.Len(t, artifacts, 2)
	require.Contains(t, string(artifacts[FormatText]), "CAG -> AGG, AGG")
	require.Contains(t, string(artifacts[FormatDOT]), `"CAG" -> "AGG";`)

	// All formats cached now
	cached, hit, err := r.RenderWithCacheInfo(ctx, g, opts)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, artifacts, cached)
}

func TestRenderInvalidFormat(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)

	g, err := r.Build(ctx, Options{Kmers: classicKmers})
	require.NoError(t, err)

	_, _, err = r.RenderWithCacheInfo(ctx, g, Options{Formats: []string{"bogus"}})
	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidFormat))
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)

	result, err := r.Execute(ctx, Options{
		Kmers:   classicKmers,
		Formats: []string{FormatText, FormatJSON},
	})
	require.NoError(t, err)

	require.Equal(t, 7, result.Stats.EdgeCount)
	require.Equal(t, 5, result.Stats.NodeCount)
	require.NotEmpty(t, result.GraphHash)
	require.False(t, result.CacheInfo.BuildHit)
	require.False(t, result.CacheInfo.RenderHit)

	require.Contains(t, string(result.Artifacts[FormatText]), "GGG -> GGA, GGG")
	require.Contains(t, string(result.Artifacts[FormatJSON]), `"adjacency"`)

	// A second run is fully cached
	again, err := r.Execute(ctx, Options{
		Kmers:   classicKmers,
		Formats: []string{FormatText, FormatJSON},
	})
	require.NoError(t, err)
	require.True(t, again.CacheInfo.BuildHit)
	require.True(t, again.CacheInfo.RenderHit)
	require.Equal(t, result.GraphHash, again.GraphHash)
}

func TestExecuteFromSequence(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)

	result, err := r.Execute(ctx, Options{
		Sequence: "GAGGCAGG",
		K:        4,
		Formats:  []string{FormatText},
	})
	require.NoError(t, err)
	// "GAGGCAGG" has 5 overlapping 4-mers.
	require.Equal(t, 5, result.Stats.EdgeCount)
}

func TestExecuteInvalidOptions(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)

	_, err := r.Execute(ctx, Options{})
	require.Error(t, err)

	_, err = r.Execute(ctx, Options{Kmers: classicKmers, Formats: []string{"bogus"}})
	require.Error(t, err)
}

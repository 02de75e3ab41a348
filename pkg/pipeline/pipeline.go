// Package pipeline provides the core graph-construction pipeline.
//
// This package implements the complete load → build → render pipeline
// that is shared by the CLI and the HTTP API. Centralizing it keeps
// caching and stats behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: materialize the k-mer list (given directly, or derived
//     from a raw sequence via its k-mer composition)
//  2. Build: construct the de Bruijn graph
//  3. Render: produce output in various formats (text, JSON, DOT,
//     SVG, PNG, PDF)
//
// Build results (adjacency JSON) and rendered artifacts are cached
// under content-derived keys, so repeated runs over the same input are
// cheap.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Kmers:   []string{"GAGG", "CAGG", "GGGG"},
//	    Formats: []string{"text"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Artifacts["text"]))
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/graphomics/debruijn/pkg/cache"
	"github.com/graphomics/debruijn/pkg/debruijn"
	apperrors "github.com/graphomics/debruijn/pkg/errors"
)

// =============================================================================
// Defaults and Formats - Single Source of Truth for CLI and API
// =============================================================================

// DefaultRankdir is the default Graphviz layout direction.
const DefaultRankdir = "LR"

// DefaultPNGScale is the rasterization scale for PNG export.
// A scale of 2.0 produces a 2x resolution image for high-DPI displays.
const DefaultPNGScale = 2.0

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: text, json, dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests. Exactly
// one of Kmers or Sequence must be set.
type Options struct {
	// Load options
	Kmers    []string `json:"kmers,omitempty"`
	Sequence string   `json:"sequence,omitempty"` // raw sequence; k-mers derived via composition
	K        int      `json:"k,omitempty"`        // k-mer length, required with Sequence

	// Build options
	Permissive bool `json:"permissive,omitempty"` // disable input validation
	Refresh    bool `json:"refresh,omitempty"`    // bypass cache reads (still writes)

	// Render options
	Formats []string `json:"formats,omitempty"`
	Rankdir string   `json:"rankdir,omitempty"` // Graphviz layout direction

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the constructed de Bruijn graph.
	Graph *debruijn.Graph

	// GraphHash is the content hash of the serialized graph.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	KmerCount  int
	NodeCount  int
	EdgeCount  int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the built graph came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks required fields for loading and building.
func (o *Options) ValidateForBuild() error {
	if len(o.Kmers) == 0 && o.Sequence == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "kmers or sequence is required")
	}
	if len(o.Kmers) > 0 && o.Sequence != "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "kmers and sequence are mutually exclusive")
	}
	if o.Sequence != "" && o.K < 2 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "k must be at least 2 when building from a sequence, got %d", o.K)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if o.Rankdir == "" {
		o.Rankdir = DefaultRankdir
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// BuildOptions returns the debruijn build options implied by o.
func (o *Options) BuildOptions() []debruijn.Option {
	if o.Permissive {
		return []debruijn.Option{debruijn.WithoutValidation()}
	}
	return nil
}

// GraphKeyOpts returns cache key options for graph construction.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		Permissive: o.Permissive,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Rankdir: o.Rankdir,
	}
}

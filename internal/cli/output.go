package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/graphomics/debruijn/pkg/pipeline"
)

// =============================================================================
// Output Destinations
// =============================================================================

// nopCloser wraps a writer so stdout is not closed by deferred Close calls.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// openOutput opens path for writing, or wraps stdout if path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// =============================================================================
// Artifact Paths
// =============================================================================

// formatExtensions maps pipeline formats to file extensions.
var formatExtensions = map[string]string{
	pipeline.FormatText: "txt",
	pipeline.FormatJSON: "json",
	pipeline.FormatDOT:  "dot",
	pipeline.FormatSVG:  "svg",
	pipeline.FormatPNG:  "png",
	pipeline.FormatPDF:  "pdf",
}

// extensionFor returns the file extension for a pipeline format.
func extensionFor(format string) string {
	if ext, ok := formatExtensions[format]; ok {
		return ext
	}
	return format
}

// knownExtension reports whether ext (without dot) belongs to a pipeline format.
func knownExtension(ext string) bool {
	for _, e := range formatExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
// This is used when generating one file per requested format.
func basePath(output, input string) string {
	if output == "" {
		if input == "" || input == "-" {
			return "graph"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if knownExtension(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// =============================================================================
// Artifact Writing
// =============================================================================

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte // rendered outputs keyed by format
	formats   []string          // requested formats, in user order
	input     string            // input file path, used to derive output names
	output    string            // output path or base path override
	cacheHit  bool              // whether the artifacts came from cache
	toStdout  bool              // stream a single artifact to stdout instead of files
}

// writeArtifacts writes the rendered artifacts to their destinations.
// A single requested format goes to params.output (or stdout when toStdout
// is set); multiple formats fan out to basePath-derived files.
func writeArtifacts(params artifactWriteParams) error {
	if len(params.formats) == 1 {
		return writeSingleArtifact(params)
	}

	base := basePath(params.output, params.input)
	for _, format := range params.formats {
		data, ok := params.artifacts[format]
		if !ok {
			return fmt.Errorf("missing artifact for format %s", format)
		}
		path := base + "." + extensionFor(format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printCacheStatus(params.cacheHit)
	return nil
}

// writeSingleArtifact writes one artifact to the output path or stdout.
func writeSingleArtifact(params artifactWriteParams) error {
	format := params.formats[0]
	data, ok := params.artifacts[format]
	if !ok {
		return fmt.Errorf("missing artifact for format %s", format)
	}

	if params.toStdout && params.output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	path := params.output
	if path == "" {
		path = basePath("", params.input) + "." + extensionFor(format)
	}
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	printCacheStatus(params.cacheHit)
	return nil
}

// printCacheStatus prints a dim cached/fresh indicator line.
func printCacheStatus(cached bool) {
	status := iconFresh
	style := styleComputed
	if cached {
		status = iconCached
		style = styleCached
	}
	printDetail("%s", style.Render(status))
}

// =============================================================================
// Clipboard
// =============================================================================

// copyToClipboard copies a single text artifact to the system clipboard.
// Clipboard failures are soft errors; headless machines routinely lack one.
func copyToClipboard(artifacts map[string][]byte, formats []string) {
	format := formats[0]
	if len(formats) > 1 {
		sorted := make([]string, len(formats))
		copy(sorted, formats)
		sort.Strings(sorted)
		format = sorted[0]
	}
	data, ok := artifacts[format]
	if !ok {
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		printWarning("Clipboard unavailable: %v", err)
		return
	}
	printDetail("Copied %s output to clipboard", format)
}

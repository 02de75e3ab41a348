package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/graphomics/debruijn/pkg/graphio"
	"github.com/graphomics/debruijn/pkg/pipeline"
)

// renderFormats is the set of formats the render command can emit.
var renderFormats = map[string]bool{
	pipeline.FormatDOT: true,
	pipeline.FormatSVG: true,
	pipeline.FormatPNG: true,
	pipeline.FormatPDF: true,
}

// renderCommand creates the render command for generating visual output
// from a previously exported graph.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render an exported graph to DOT, SVG, PNG, or PDF",
		Long: `Render an exported graph to DOT, SVG, PNG, or PDF.

The render command takes a graph.json file (produced by 'build -f json')
and renders it with Graphviz. PNG and PDF conversion requires
rsvg-convert on the PATH.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseRenderFormats(formatsStr)
			if err := validateRenderFormats(opts.Formats); err != nil {
				return err
			}
			opts.Refresh = refresh
			if opts.Rankdir == "" {
				opts.Rankdir = c.Config.Rankdir
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runRender(ctx, args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&opts.Rankdir, "rankdir", "", "Graphviz layout direction (LR, TB)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even if cached")

	return cmd
}

// parseRenderFormats parses the --format flag; empty defaults to SVG.
func parseRenderFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// validateRenderFormats checks that all requested formats are renderable.
func validateRenderFormats(formats []string) error {
	for _, f := range formats {
		if !renderFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', 'png', or 'pdf')", f)
		}
	}
	return nil
}

// runRender loads the exported graph and renders it to the requested formats.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)

	g, err := graphio.Import(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	logger.Infof("Loaded graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = logger

	spinner := newSpinnerWithContext(ctx, "Rendering graph...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
	})
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graphomics/debruijn/pkg/kmer"
	"github.com/graphomics/debruijn/pkg/pipeline"
)

// buildFormats is the set of formats the build command can emit.
// Image formats require the render command.
var buildFormats = map[string]bool{
	pipeline.FormatText: true,
	pipeline.FormatJSON: true,
	pipeline.FormatDOT:  true,
}

// buildOutputOpts holds the output-related flags for the build command.
type buildOutputOpts struct {
	output   string // output file or base path
	copyOut  bool   // copy the result to the clipboard
	toStdout bool   // stream a single format to stdout
}

// buildCommand creates the build command for constructing graphs from k-mers.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		formatsStr string
		outOpts    buildOutputOpts
		sequence   string
		k          int
		permissive bool
		noCache    bool
		refresh    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "build [file]",
		Short: "Build a de Bruijn graph from a k-mer collection",
		Long: `Build a de Bruijn graph from a k-mer collection.

K-mers are read one per line from the given file, or from stdin when the
file is "-" or omitted. Alternatively, --sequence with -k derives the
k-mer composition of a raw sequence first.

Each k-mer becomes an edge from its (k-1)-length prefix to its
(k-1)-length suffix; nodes with equal labels are glued. Duplicate k-mers
produce parallel edges.

Input is validated by default: all k-mers must share one length, and that
length must be at least 2. Use --permissive to skip validation.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = c.parseFormats(formatsStr)
			if err := validateBuildFormats(opts.Formats); err != nil {
				return err
			}
			opts.Sequence = sequence
			opts.K = k
			opts.Permissive = permissive
			opts.Refresh = refresh
			if opts.Rankdir == "" {
				opts.Rankdir = c.Config.Rankdir
			}

			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			outOpts.toStdout = outOpts.output == "" && len(opts.Formats) == 1

			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runBuild(ctx, input, opts, outOpts, noCache)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): text (default), json, dot (comma-separated)")
	cmd.Flags().StringVarP(&outOpts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&outOpts.copyOut, "copy", false, "copy the output to the clipboard")
	cmd.Flags().StringVarP(&sequence, "sequence", "s", "", "derive k-mers from a raw sequence instead of a file")
	cmd.Flags().IntVarP(&k, "kmer-length", "k", 0, "k-mer length, required with --sequence")
	cmd.Flags().BoolVar(&permissive, "permissive", false, "skip input validation")
	cmd.Flags().StringVar(&opts.Rankdir, "rankdir", "", "Graphviz layout direction for dot output (LR, TB)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// validateBuildFormats checks that all requested formats are valid for build.
func validateBuildFormats(formats []string) error {
	for _, f := range formats {
		if !buildFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'text', 'json', or 'dot'; use 'debruijn render' for images)", f)
		}
	}
	return nil
}

// runBuild loads the k-mers, runs the pipeline, and writes the outputs.
func (c *CLI) runBuild(ctx context.Context, input string, opts pipeline.Options, outOpts buildOutputOpts, noCache bool) error {
	logger := loggerFromContext(ctx)

	if opts.Sequence == "" {
		kmers, err := kmer.ReadFile(input)
		if err != nil {
			return err
		}
		opts.Kmers = kmers
		logger.Debugf("Read %d k-mers from %s", len(kmers), input)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = logger

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Building graph...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Built graph with %d nodes, %d edges", result.Stats.NodeCount, result.Stats.EdgeCount))

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     buildArtifactInput(input),
		output:    outOpts.output,
		cacheHit:  result.CacheInfo.BuildHit && result.CacheInfo.RenderHit,
		toStdout:  outOpts.toStdout,
	}); err != nil {
		return err
	}

	if outOpts.copyOut {
		copyToClipboard(result.Artifacts, opts.Formats)
	}

	if !outOpts.toStdout {
		printStats(result.Stats.KmerCount, result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.BuildHit)
		if jsonPath := writtenJSONPath(opts.Formats, outOpts.output, buildArtifactInput(input)); jsonPath != "" {
			printNextStep("Explore interactively", "debruijn explore "+jsonPath)
			printNextStep("Render a visual", "debruijn render "+jsonPath)
		}
	}
	return nil
}

// buildArtifactInput normalizes the input path for output naming.
// Stdin input has no useful base name.
func buildArtifactInput(input string) string {
	if input == "-" {
		return ""
	}
	return input
}

// writtenJSONPath returns the path of the JSON artifact if one was written
// to disk, or empty otherwise.
func writtenJSONPath(formats []string, output, input string) string {
	hasJSON := false
	for _, f := range formats {
		if f == pipeline.FormatJSON {
			hasJSON = true
		}
	}
	if !hasJSON {
		return ""
	}
	if len(formats) == 1 {
		if output == "" {
			return ""
		}
		return output
	}
	return basePath(output, input) + "." + extensionFor(pipeline.FormatJSON)
}

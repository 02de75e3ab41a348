package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/graphomics/debruijn/pkg/debruijn"
	apperrors "github.com/graphomics/debruijn/pkg/errors"
)

// DOTOptions configures DOT generation.
type DOTOptions struct {
	// Rankdir controls the layout direction ("LR", "TB", ...).
	// Defaults to "LR", which reads naturally for sequence overlaps.
	Rankdir string
}

// ToDOT converts a graph to Graphviz DOT format.
//
// Every node label becomes a DOT node and every adjacency entry becomes
// an arrow, so parallel edges (repeated k-mers) appear as repeated
// arrows. Nodes and edges are emitted in sorted key order for
// deterministic output. Render the result with [SVG].
func ToDOT(g *debruijn.Graph, opts DOTOptions) string {
	rankdir := opts.Rankdir
	if rankdir == "" {
		rankdir = "LR"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph debruijn {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontname=\"monospace\"];\n")
	buf.WriteString("\n")

	for _, node := range g.Keys() {
		for _, successor := range g.Successors(node) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", node, successor)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// SVG renders a DOT graph to SVG using Graphviz.
// The returned bytes are ready for display or further conversion with
// [PNG] or [PDF].
func SVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// Package render produces textual and graphical renderings of de
// Bruijn graphs.
//
// Three families of output are supported:
//
//   - Text: the classic adjacency-list format, "AGG -> GGG" one line
//     per source node.
//   - DOT/SVG: Graphviz node-link diagrams, rendered in-process with
//     go-graphviz.
//   - PNG/PDF: rasterized and paginated conversions of the SVG output,
//     delegated to rsvg-convert.
//
// All renderings are deterministic: they enumerate the graph in its
// sorted key order, so identical graphs always produce identical bytes.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/graphomics/debruijn/pkg/debruijn"
)

// Text renders the adjacency list as text, one line per source node:
//
//	AGG -> GGG
//	CAG -> AGG, AGG
//
// Keys appear in sorted order with successors joined by ", ". Every
// line, including the last, ends with a newline. The empty graph
// renders as the empty string.
func Text(g *debruijn.Graph) string {
	var b strings.Builder
	for _, node := range g.Keys() {
		b.WriteString(node)
		b.WriteString(" -> ")
		b.WriteString(strings.Join(g.Successors(node), ", "))
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteText writes the text rendering of g to w.
func WriteText(w io.Writer, g *debruijn.Graph) error {
	if _, err := io.WriteString(w, Text(g)); err != nil {
		return fmt.Errorf("write adjacency list: %w", err)
	}
	return nil
}

// WriteTextFile writes the text rendering of g to a file at path.
// The file is created with 0644 permissions.
func WriteTextFile(path string, g *debruijn.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteText(f, g)
}

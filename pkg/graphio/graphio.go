// Package graphio serializes de Bruijn graphs as JSON.
//
// The adjacency mapping is the canonical payload:
//
//	{
//	  "adjacency": {
//	    "CAG": ["AGG", "AGG"],
//	    "GAG": ["AGG"]
//	  }
//	}
//
// k, node count, and edge count are derived on load rather than carried
// on the wire, so a document can never contradict its own data. The
// format round-trips exactly: export → import reproduces the graph.
package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/graphomics/debruijn/pkg/debruijn"
)

// document is the on-wire JSON shape.
type document struct {
	Adjacency map[string][]string `json:"adjacency"`
}

// Marshal converts a graph to JSON bytes.
// Map keys give deterministic output for identical graphs.
func Marshal(g *debruijn.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a graph.
func Unmarshal(data []byte) (*debruijn.Graph, error) {
	return Read(bytes.NewReader(data))
}

// Write encodes a graph as indented JSON to w.
// Use Marshal for in-memory serialization or Export for files.
func Write(w io.Writer, g *debruijn.Graph) error {
	doc := document{Adjacency: g.Adjacency()}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON graph from r.
// Successor lists are re-sorted and counts re-derived on load, so the
// result is valid even if the document was edited by hand. Returns
// validation errors for adjacency entries with empty successor lists.
func Read(r io.Reader) (*debruijn.Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return debruijn.FromAdjacency(doc.Adjacency)
}

// Export writes a graph to a JSON file at path.
// The file is created with 0644 permissions.
func Export(path string, g *debruijn.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, g)
}

// Import reads a JSON file at path and returns the decoded graph.
func Import(path string) (*debruijn.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

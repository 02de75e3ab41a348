package graphio

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/graphomics/debruijn/pkg/debruijn"
)

func buildGraph(t *testing.T, kmers []string) *debruijn.Graph {
	t.Helper()
	g, err := debruijn.Build(kmers)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return g
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	g := buildGraph(t, []string{"GAGG", "CAGG", "GGGG", "GGGA", "CAGG", "AGGG", "GGAG"})

	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if got.K() != g.K() {
		t.Errorf("K = %d, want %d", got.K(), g.K())
	}
	if got.EdgeCount() != g.EdgeCount() {
		t.Errorf("EdgeCount = %d, want %d", got.EdgeCount(), g.EdgeCount())
	}
	if got.NodeCount() != g.NodeCount() {
		t.Errorf("NodeCount = %d, want %d", got.NodeCount(), g.NodeCount())
	}

	wantKeys := g.Keys()
	gotKeys := got.Keys()
	if len(gotKeys) != len(wantKeys) {
		t.Fatalf("Keys = %v, want %v", gotKeys, wantKeys)
	}
	for i, key := range wantKeys {
		if gotKeys[i] != key {
			t.Errorf("Keys[%d] = %q, want %q", i, gotKeys[i], key)
		}
	}
}

func TestMarshalDeterministic(t *testing.T) {
	g := buildGraph(t, []string{"GAGG", "CAGG", "GGGG"})

	d1, err := Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	if string(d1) != string(d2) {
		t.Error("Marshal should be deterministic for the same graph")
	}
}

func TestMarshalShape(t *testing.T) {
	g := buildGraph(t, []string{"ATG"})

	data, err := Marshal(g)
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]map[string][]string
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("payload is not a JSON object: %v", err)
	}
	adj, ok := doc["adjacency"]
	if !ok {
		t.Fatal("payload missing adjacency key")
	}
	if len(adj["AT"]) != 1 || adj["AT"][0] != "TG" {
		t.Errorf("adjacency = %v, want AT -> [TG]", adj)
	}
}

func TestReadResortsAndRederives(t *testing.T) {
	// Successor lists come back sorted even when the document is not.
	input := `{"adjacency": {"GGG": ["GGG", "GGA"]}}`

	g, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	successors := g.Successors("GGG")
	if len(successors) != 2 || successors[0] != "GGA" || successors[1] != "GGG" {
		t.Errorf("Successors = %v, want [GGA GGG]", successors)
	}
	if g.K() != 4 {
		t.Errorf("K = %d, want 4 (derived from label length)", g.K())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", g.EdgeCount())
	}
}

func TestReadRejectsEmptySuccessors(t *testing.T) {
	_, err := Read(strings.NewReader(`{"adjacency": {"CAG": []}}`))
	if err == nil {
		t.Fatal("expected error for empty successor list")
	}
}

func TestReadMalformed(t *testing.T) {
	_, err := Read(strings.NewReader(`{not json`))
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestExportImport(t *testing.T) {
	g := buildGraph(t, []string{"GAGG", "CAGG", "AGGG"})
	path := filepath.Join(t.TempDir(), "graph.json")

	if err := Export(path, g); err != nil {
		t.Fatalf("Export error: %v", err)
	}

	got, err := Import(path)
	if err != nil {
		t.Fatalf("Import error: %v", err)
	}
	if got.EdgeCount() != g.EdgeCount() {
		t.Errorf("EdgeCount = %d, want %d", got.EdgeCount(), g.EdgeCount())
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEmptyGraphRoundTrip(t *testing.T) {
	g := buildGraph(t, nil)

	data, err := Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.EdgeCount() != 0 || len(got.Keys()) != 0 {
		t.Errorf("empty graph round trip produced %v", got.Adjacency())
	}
}

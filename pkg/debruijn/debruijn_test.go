package debruijn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/graphomics/debruijn/pkg/errors"
)

// classicKmers is the Rosalind BA3E dataset (k=4).
var classicKmers = []string{"GAGG", "CAGG", "GGGG", "GGGA", "CAGG", "AGGG", "GGAG"}

func TestPrefixSuffix(t *testing.T) {
	tests := []struct {
		kmer       string
		wantPrefix string
		wantSuffix string
	}{
		{"GAGG", "GAG", "AGG"},
		{"AT", "A", "T"},
		{"A", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.wantPrefix, Prefix(tt.kmer), "Prefix(%q)", tt.kmer)
		require.Equal(t, tt.wantSuffix, Suffix(tt.kmer), "Suffix(%q)", tt.kmer)
	}
}

func TestCompositionGraph(t *testing.T) {
	edges := CompositionGraph([]string{"GAGG", "CAGG", "CAGG"})

	// One edge per k-mer, in input order, duplicates retained.
	require.Equal(t, []Edge{
		{Prefix: "GAG", Suffix: "AGG"},
		{Prefix: "CAG", Suffix: "AGG"},
		{Prefix: "CAG", Suffix: "AGG"},
	}, edges)
}

func TestCompositionGraphEmpty(t *testing.T) {
	require.Empty(t, CompositionGraph(nil))
	require.Empty(t, CompositionGraph([]string{}))
}

func TestBuildClassicDataset(t *testing.T) {
	g, err := Build(classicKmers)
	require.NoError(t, err)

	require.Equal(t, []string{"AGG", "CAG", "GAG", "GGA", "GGG"}, g.Keys())
	require.Equal(t, map[string][]string{
		"AGG": {"GGG"},
		"CAG": {"AGG", "AGG"},
		"GAG": {"AGG"},
		"GGA": {"GAG"},
		"GGG": {"GGA", "GGG"},
	}, g.Adjacency())

	require.Equal(t, 4, g.K())
	require.Equal(t, 5, g.NodeCount())
	require.Equal(t, len(classicKmers), g.EdgeCount())
}

func TestBuildEdgeCountInvariant(t *testing.T) {
	// Sum of successor-list lengths must equal the input size.
	inputs := [][]string{
		nil,
		{"AT"},
		{"ATG", "TGC", "GCA", "ATG"},
		classicKmers,
	}

	for _, kmers := range inputs {
		g, err := Build(kmers)
		require.NoError(t, err)

		total := 0
		for _, key := range g.Keys() {
			total += len(g.Successors(key))
		}
		require.Equal(t, len(kmers), total, "input %v", kmers)
		require.Equal(t, len(kmers), g.EdgeCount(), "input %v", kmers)
	}
}

func TestBuildOrderIndependence(t *testing.T) {
	want, err := Build(classicKmers)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]string(nil), classicKmers...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got, err := Build(shuffled)
		require.NoError(t, err)
		require.Equal(t, want.Adjacency(), got.Adjacency())
		require.Equal(t, want.Keys(), got.Keys())
	}
}

func TestBuildSortedness(t *testing.T) {
	g, err := Build([]string{"TTT", "AAA", "TAC", "TAA", "AAT", "ACG"})
	require.NoError(t, err)

	keys := g.Keys()
	for i := 1; i < len(keys); i++ {
		require.Less(t, keys[i-1], keys[i], "keys must be strictly increasing")
	}
	for _, key := range keys {
		successors := g.Successors(key)
		for i := 1; i < len(successors); i++ {
			require.LessOrEqual(t, successors[i-1], successors[i],
				"successors of %q must be non-decreasing", key)
		}
	}
}

func TestBuildDuplicatePreservation(t *testing.T) {
	// CAGG appears three times: CAG must list AGG three times.
	g, err := Build([]string{"CAGG", "CAGG", "CAGG", "CAGT"})
	require.NoError(t, err)
	require.Equal(t, []string{"AGG", "AGG", "AGG", "AGT"}, g.Successors("CAG"))
}

func TestBuildEmpty(t *testing.T) {
	g, err := Build(nil)
	require.NoError(t, err)
	require.NotNil(t, g)
	require.Empty(t, g.Keys())
	require.Empty(t, g.Adjacency())
	require.Zero(t, g.K())
	require.Zero(t, g.NodeCount())
	require.Zero(t, g.EdgeCount())
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name  string
		kmers []string
	}{
		{"MixedLengths", []string{"GAGG", "CAG"}},
		{"TooShort", []string{"A", "T"}},
		{"EmptyKmer", []string{"GAGG", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(tt.kmers)
			require.Error(t, err)
			require.Nil(t, g, "no partial result on validation failure")
			require.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidInput))
		})
	}
}

func TestBuildWithoutValidation(t *testing.T) {
	// Mixed lengths fragment into distinct labels instead of failing.
	g, err := Build([]string{"GAGG", "CAG"}, WithoutValidation())
	require.NoError(t, err)
	require.Equal(t, []string{"CA", "GAG"}, g.Keys())
	require.Equal(t, []string{"AG"}, g.Successors("CA"))
	require.Equal(t, []string{"AGG"}, g.Successors("GAG"))

	// Length-1 k-mers collapse into the degenerate "" node.
	g, err = Build([]string{"A", "T"}, WithoutValidation())
	require.NoError(t, err)
	require.Equal(t, []string{""}, g.Keys())
	require.Equal(t, []string{"", ""}, g.Successors(""))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(nil))
	require.NoError(t, Validate([]string{"GAGG", "CAGG"}))
	require.NoError(t, Validate([]string{"AT"}))

	require.Error(t, Validate([]string{"GAGG", "CAG"}))
	require.Error(t, Validate([]string{"A"}))
	require.Error(t, Validate([]string{""}))
}

func TestFromAdjacency(t *testing.T) {
	adj := map[string][]string{
		"GGG": {"GGG", "GGA"}, // unsorted on purpose
		"CAG": {"AGG", "AGG"},
	}

	g, err := FromAdjacency(adj)
	require.NoError(t, err)
	require.Equal(t, []string{"CAG", "GGG"}, g.Keys())
	require.Equal(t, []string{"GGA", "GGG"}, g.Successors("GGG"), "successors re-sorted on load")
	require.Equal(t, 4, g.K())
	require.Equal(t, 4, g.EdgeCount())

	// The graph is detached from the input map.
	adj["GGG"][0] = "XXX"
	require.Equal(t, []string{"GGA", "GGG"}, g.Successors("GGG"))
}

func TestFromAdjacencyRejectsEmptySuccessors(t *testing.T) {
	_, err := FromAdjacency(map[string][]string{"CAG": {}})
	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidInput))
}

func TestGraphAccessorsDetached(t *testing.T) {
	g, err := Build(classicKmers)
	require.NoError(t, err)

	keys := g.Keys()
	keys[0] = "mutated"
	require.Equal(t, []string{"AGG", "CAG", "GAG", "GGA", "GGG"}, g.Keys())

	successors := g.Successors("CAG")
	successors[0] = "mutated"
	require.Equal(t, []string{"AGG", "AGG"}, g.Successors("CAG"))

	require.Nil(t, g.Successors("unknown"))
	require.True(t, g.HasNode("CAG"))
	require.False(t, g.HasNode("AGT"))
}

package cache

// Keyer derives stable cache keys for the two cacheable pipeline
// stages. Keys are content-addressed: the input hash identifies the
// data and the opts identify every setting that changes the output.
type Keyer interface {
	// GraphKey generates a key for a built graph, given the hash of
	// the canonical input k-mer list.
	GraphKey(inputHash string, opts GraphKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, given the
	// hash of the serialized graph.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// GraphKeyOpts are the build settings that affect the resulting graph.
type GraphKeyOpts struct {
	// Permissive records whether validation was disabled; permissive
	// and strict builds of the same input can differ (degenerate
	// inputs) and must not share an entry.
	Permissive bool `json:"permissive"`
}

// ArtifactKeyOpts are the render settings that affect artifact bytes.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Rankdir string `json:"rankdir,omitempty"`
}

// DefaultKeyer hashes canonical JSON of the key parts with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a built graph.
func (k *DefaultKeyer) GraphKey(inputHash string, opts GraphKeyOpts) string {
	return hashKey("graph", inputHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

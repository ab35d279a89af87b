package cache

// Keyer derives cache keys from content hashes and options.
type Keyer interface {
	// ArtifactKey returns the key of a rendered artifact.
	ArtifactKey(networkHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Rankdir string `json:"rankdir,omitempty"`
	Params  bool   `json:"params,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:" followed by a hash of the network hash and
// the options.
func (DefaultKeyer) ArtifactKey(networkHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", networkHash, opts)
}

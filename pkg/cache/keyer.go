package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// FigureKeyOpts are the normalization options that affect a cached figure.
type FigureKeyOpts struct {
	Margin   float64 `json:"margin"`
	Colormap string  `json:"colormap,omitempty"`
}

// ArtifactKeyOpts are the render options that affect a cached artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Colormap string  `json:"colormap,omitempty"`
}

// Keyer generates cache keys for the two cached stages.
type Keyer interface {
	// FigureKey keys a normalized figure by the hash of its input
	// datasets plus normalization options.
	FigureKey(requestHash string, opts FigureKeyOpts) string

	// ArtifactKey keys a rendered artifact by the hash of its figure
	// plus render options.
	ArtifactKey(figureHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// FigureKey generates a key for normalized-figure caching.
func (k *DefaultKeyer) FigureKey(requestHash string, opts FigureKeyOpts) string {
	return hashKey("figure", requestHash, opts)
}

// ArtifactKey generates a key for rendered-artifact caching.
func (k *DefaultKeyer) ArtifactKey(figureHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", figureHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix, namespacing all generated keys.
// Server deployments use this to keep per-tenant entries apart in a shared
// Redis instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// FigureKey generates a prefixed figure key.
func (k *ScopedKeyer) FigureKey(requestHash string, opts FigureKeyOpts) string {
	return k.prefix + k.inner.FigureKey(requestHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(figureHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(figureHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

package hnsw

import (
	"math"

	"github.com/contextvault/hnswkv/distance"
)

// Config holds the parameters fixed at index creation. It must be supplied
// identically across opens of the same namespace; the core does not persist
// it (see the Persisted state layout note).
type Config struct {
	// M is the target out-degree for layers above 0. Sensible range 5-48.
	M int
	// EFConstruction is the candidate list size used while inserting.
	EFConstruction int
	// EFSearch is the default candidate list size at query time, in layer 0.
	// Must satisfy EFSearch >= k for any query of k.
	EFSearch int
	// DistanceType selects the vector distance function. The zero value is
	// distance.Cosine.
	DistanceType distance.Metric
	// Dimension is the fixed vector length this index accepts. Two indices
	// are compatible only if they share the same Dimension, codec, and
	// distance function (see the Persisted state layout note).
	Dimension int
}

// DefaultConfig returns reasonable defaults: M=16, EFConstruction=200,
// EFSearch=50, cosine distance. Dimension must still be set by the caller.
func DefaultConfig() Config {
	return Config{M: 16, EFConstruction: 200, EFSearch: 50, DistanceType: distance.Cosine}
}

// MMax returns the out-degree cap for layer. Layer 0 gets 2*M; every other
// layer gets M.
func (c Config) MMax(layer int) int {
	if layer == 0 {
		return 2 * c.M
	}
	return c.M
}

// ml is the level-generation scale factor, derived from M.
func (c Config) ml() float64 {
	return 1 / math.Log(float64(c.M))
}

// Validate rejects configs with M out of range or EFSearch/EFConstruction
// too small to be useful.
func (c Config) Validate() error {
	if c.M < 2 {
		return &InvalidConfigError{Reason: "M must be >= 2"}
	}
	if c.EFConstruction < 1 {
		return &InvalidConfigError{Reason: "EFConstruction must be >= 1"}
	}
	if c.EFSearch < 1 {
		return &InvalidConfigError{Reason: "EFSearch must be >= 1"}
	}
	if _, err := distance.For(c.DistanceType); err != nil {
		return &InvalidConfigError{Reason: err.Error()}
	}
	if c.Dimension <= 0 {
		return &InvalidConfigError{Reason: "Dimension must be > 0"}
	}
	return nil
}

// validateSearchK rejects a per-call k that exceeds the configured EFSearch:
// a search can never return more candidates than it explores.
func (c Config) validateSearchK(k int) error {
	if k > c.EFSearch {
		return &InvalidConfigError{Reason: "k exceeds configured EFSearch"}
	}
	return nil
}

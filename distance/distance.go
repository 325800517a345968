// Package distance provides the vector distance functions hnswkv can be
// configured with. Cosine is the default the HNSW engine assumes; the others
// are carried for callers who want a different metric, selectable per index
// at both insert and query time rather than hardwired.
package distance

import (
	"fmt"
	"math"
)

// Metric identifies a distance function.
type Metric int

const (
	// Cosine is d(a,b) = 1 - (a·b)/(‖a‖·‖b‖). The default metric.
	Cosine Metric = iota
	// SquaredL2 is the squared Euclidean distance.
	SquaredL2
	// Dot is the negated dot product, turning similarity into a distance.
	Dot
)

func (m Metric) String() string {
	switch m {
	case Cosine:
		return "cosine"
	case SquaredL2:
		return "squared_l2"
	case Dot:
		return "dot"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Func computes the distance between two equal-length vectors.
type Func func(a, b []float32) float32

// For returns the distance function for the given metric.
func For(m Metric) (Func, error) {
	switch m {
	case Cosine:
		return CosineDistance, nil
	case SquaredL2:
		return SquaredL2Distance, nil
	case Dot:
		return DotDistance, nil
	default:
		return nil, fmt.Errorf("distance: unsupported metric %v", m)
	}
}

// CosineDistance returns 1 - cos(theta) between a and b.
// Assumes len(a) == len(b); callers enforce dimensional consistency.
func CosineDistance(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		af, bf := float64(a[i]), float64(b[i])
		dot += af * bf
		na += af * af
		nb += bf * bf
	}
	if na == 0 || nb == 0 {
		return 1
	}
	cos := dot / (math.Sqrt(na) * math.Sqrt(nb))
	// Clamp for floating point drift outside [-1, 1].
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return float32(1 - cos)
}

// SquaredL2Distance returns the squared Euclidean distance between a and b.
func SquaredL2Distance(a, b []float32) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(sum)
}

// DotDistance returns the negated dot product of a and b, so that a larger
// similarity yields a smaller distance, consistent with the other metrics.
func DotDistance(a, b []float32) float32 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return float32(-sum)
}

// Package model defines the small value types shared across hnswkv's layers.
package model

import "fmt"

// ID is a dense, monotonically assigned identifier for a Point.
// IDs are never reused.
type ID uint32

// String returns a string representation of the ID.
func (id ID) String() string {
	return fmt.Sprintf("%d", uint32(id))
}

// Point is an immutable, fixed-dimensional vector.
type Point struct {
	ID     ID
	Vector []float32
}

// Neighbor is one edge in a LayerNode's adjacency: the neighbor's ID and the
// distance from the owning node to it, cached at connection time.
type Neighbor struct {
	ID       ID
	Distance float32
}

// LayerNode is the adjacency record of one Point in one layer.
type LayerNode struct {
	Layer     int
	ID        ID
	Neighbors []Neighbor
}

// Metadata is an opaque, user-supplied byte string associated 1:1 with a
// Point ID. The core never interprets its contents.
type Metadata []byte

// Result is one hit returned by a k-NN query.
type Result struct {
	ID       ID
	Distance float32
	Metadata Metadata
}

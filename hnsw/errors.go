package hnsw

import (
	"fmt"

	"github.com/contextvault/hnswkv/model"
)

// DimensionMismatchError is returned when an inserted or queried vector's
// length does not match the index's configured dimension. It is raised
// before any write.
type DimensionMismatchError struct {
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("hnsw: dimension mismatch: want %d, got %d", e.Want, e.Got)
}

// InvalidConfigError is returned when a Config fails validation, either at
// Engine construction or per-call (ef_search < k).
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return "hnsw: invalid config: " + e.Reason
}

// NotFoundError is returned by GetVector when id is beyond num_points.
type NotFoundError struct {
	ID model.ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("hnsw: point %d not found", e.ID)
}

package hnsw

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/contextvault/hnswkv/model"
)

// visitedSet tracks ids visited during one searchLayer call. Backed by a
// Roaring bitmap rather than a plain Go map: the visited set is exactly the
// dense uint32-id-set membership shape RoaringBitmap targets, and a fresh
// bitmap is cheap to allocate per call.
type visitedSet struct {
	rb *roaring.Bitmap
}

func newVisitedSet() *visitedSet {
	return &visitedSet{rb: roaring.New()}
}

// Add marks id visited and reports whether it was newly added.
func (v *visitedSet) Add(id model.ID) bool {
	return v.rb.CheckedAdd(uint32(id))
}

func (v *visitedSet) Contains(id model.ID) bool {
	return v.rb.Contains(uint32(id))
}

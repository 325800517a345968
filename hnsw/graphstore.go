package hnsw

import (
	"context"

	"github.com/contextvault/hnswkv/model"
)

// GraphStore is the Engine's sole dependency on persistence: a narrow
// interface so the concrete KV backend is injected rather than imported
// directly, avoiding any reverse dependency from the algorithmic core onto
// a storage SDK. Satisfied by *store.Store and *store.CachingStore.
type GraphStore interface {
	GetEntryPoint(ctx context.Context) (id model.ID, ok bool, err error)
	SetEntryPoint(ctx context.Context, id model.ID) error
	NumPoints(ctx context.Context) (uint32, error)
	NumLayers(ctx context.Context) (uint32, error)

	NewPoint(ctx context.Context, vector []float32) (model.ID, error)
	GetPoint(ctx context.Context, id model.ID) ([]float32, error)
	GetPoints(ctx context.Context, ids []model.ID) ([][]float32, error)

	GetNeighbors(ctx context.Context, layer int, id model.ID) ([]model.Neighbor, error)
	GetNeighborsMany(ctx context.Context, layer int, ids []model.ID) (map[model.ID][]model.Neighbor, error)
	UpsertNeighbors(ctx context.Context, layer int, id model.ID, neighbors []model.Neighbor) error
	UpsertNeighborsMany(ctx context.Context, layer int, byID map[model.ID][]model.Neighbor) error
	PromoteToNewLayer(ctx context.Context, id model.ID) error

	GetMetadata(ctx context.Context, id model.ID) (model.Metadata, bool, error)
	GetMetadataMany(ctx context.Context, ids []model.ID) ([]model.Metadata, error)
	SetMetadata(ctx context.Context, id model.ID, data model.Metadata) error
}

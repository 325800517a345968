package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contextvault/hnswkv/kv"
	"github.com/contextvault/hnswkv/kv/memkv"
	"github.com/contextvault/hnswkv/model"
	"github.com/contextvault/hnswkv/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	adapter := kv.New(memkv.New(), "ns")
	return store.New(adapter, nil)
}

func TestStoreEmptyIndexState(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, ok, err := s.GetEntryPoint(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := s.NumPoints(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	l, err := s.NumLayers(ctx)
	require.NoError(t, err)
	assert.Zero(t, l)
}

func TestStoreNewPointAssignsContiguousIDs(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	id0, err := s.NewPoint(ctx, []float32{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, model.ID(0), id0)

	id1, err := s.NewPoint(ctx, []float32{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, model.ID(1), id1)

	n, err := s.NumPoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), n)

	v, err := s.GetPoint(ctx, id0)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, v)
}

func TestStoreGetPointNotFound(t *testing.T) {
	s := newStore(t)
	_, err := s.GetPoint(context.Background(), model.ID(42))
	require.Error(t, err)
	var nf *store.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestStoreGetPointsFailsFastOnAbsentID(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	id0, err := s.NewPoint(ctx, []float32{1})
	require.NoError(t, err)

	_, err = s.GetPoints(ctx, []model.ID{id0, model.ID(99)})
	require.Error(t, err)
}

func TestStoreNeighborsRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	neighbors := []model.Neighbor{{ID: 1, Distance: 0.5}, {ID: 2, Distance: 0.75}}
	require.NoError(t, s.UpsertNeighbors(ctx, 0, model.ID(0), neighbors))

	got, err := s.GetNeighbors(ctx, 0, model.ID(0))
	require.NoError(t, err)
	assert.ElementsMatch(t, neighbors, got)
}

func TestStorePromoteToNewLayerAdvancesCounterThenSetEntryPoint(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	id, err := s.NewPoint(ctx, []float32{1})
	require.NoError(t, err)

	require.NoError(t, s.PromoteToNewLayer(ctx, id))
	l, err := s.NumLayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), l)

	require.NoError(t, s.SetEntryPoint(ctx, id))
	ep, ok, err := s.GetEntryPoint(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, id, ep)

	got, err := s.GetNeighbors(ctx, 0, id)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStoreMetadataRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	id, err := s.NewPoint(ctx, []float32{1})
	require.NoError(t, err)

	_, ok, err := s.GetMetadata(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok, "metadata absent until set")

	require.NoError(t, s.SetMetadata(ctx, id, model.Metadata(`{"k":"v"}`)))
	meta, ok, err := s.GetMetadata(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, model.Metadata(`{"k":"v"}`), meta)
}

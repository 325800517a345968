package hnsw_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contextvault/hnswkv/distance"
	"github.com/contextvault/hnswkv/hnsw"
	"github.com/contextvault/hnswkv/kv"
	"github.com/contextvault/hnswkv/kv/memkv"
	"github.com/contextvault/hnswkv/model"
	"github.com/contextvault/hnswkv/store"
)

// newEngineWithStore returns an Engine and the backing *store.Store so tests
// can inspect persisted layer state directly, something the Engine's own
// API deliberately doesn't expose.
func newEngineWithStore(t *testing.T, cfg hnsw.Config) (*hnsw.Engine, *store.Store) {
	t.Helper()
	s := store.New(kv.New(memkv.New(), "ns"), nil)
	e, err := hnsw.New(s, cfg)
	require.NoError(t, err)
	return e, s
}

func TestPropertyIDContiguity(t *testing.T) {
	cfg := hnsw.DefaultConfig()
	cfg.Dimension = 3
	e, s := newEngineWithStore(t, cfg)
	ctx := context.Background()

	rng := newXorshift(11)
	var ids []model.ID
	for i := 0; i < 40; i++ {
		id, err := e.Insert(ctx, randomUnitVector(rng, 3), nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	numPoints, err := s.NumPoints(ctx)
	require.NoError(t, err)
	require.Equal(t, uint32(len(ids)), numPoints)

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		assert.Equal(t, model.ID(i), id, "ids must form a dense 0..num_points-1 range")
	}
}

func TestPropertyLayerContiguity(t *testing.T) {
	cfg := hnsw.DefaultConfig()
	cfg.M = 4
	cfg.Dimension = 8
	e, s := newEngineWithStore(t, cfg)
	ctx := context.Background()

	rng := newXorshift(23)
	for i := 0; i < 150; i++ {
		_, err := e.Insert(ctx, randomUnitVector(rng, 8), nil)
		require.NoError(t, err)
	}

	numPoints, err := s.NumPoints(ctx)
	require.NoError(t, err)
	numLayers, err := s.NumLayers(ctx)
	require.NoError(t, err)

	for id := model.ID(0); id < model.ID(numPoints); id++ {
		highest := -1
		for layer := 0; layer < int(numLayers); layer++ {
			_, err := s.GetNeighbors(ctx, layer, id)
			if err != nil {
				break
			}
			highest = layer
		}
		if highest < 0 {
			continue
		}
		for layer := 0; layer <= highest; layer++ {
			_, err := s.GetNeighbors(ctx, layer, id)
			assert.NoError(t, err, "id %d present at layer %d must also be present at layer %d", id, highest, layer)
		}
	}
}

func TestPropertyDegreeBound(t *testing.T) {
	cfg := hnsw.DefaultConfig()
	cfg.M = 4
	cfg.Dimension = 16
	e, s := newEngineWithStore(t, cfg)
	ctx := context.Background()

	rng := newXorshift(29)
	for i := 0; i < 200; i++ {
		_, err := e.Insert(ctx, randomUnitVector(rng, 16), nil)
		require.NoError(t, err)
	}

	numPoints, err := s.NumPoints(ctx)
	require.NoError(t, err)
	numLayers, err := s.NumLayers(ctx)
	require.NoError(t, err)

	for layer := 0; layer < int(numLayers); layer++ {
		mMax := cfg.MMax(layer)
		for id := model.ID(0); id < model.ID(numPoints); id++ {
			neighbors, err := s.GetNeighbors(ctx, layer, id)
			if err != nil {
				continue
			}
			assert.LessOrEqual(t, len(neighbors), mMax, "layer %d id %d exceeds degree bound", layer, id)
		}
	}
}

func TestPropertyEdgeDistanceFidelity(t *testing.T) {
	cfg := hnsw.DefaultConfig()
	cfg.M = 4
	cfg.Dimension = 8
	e, s := newEngineWithStore(t, cfg)
	ctx := context.Background()

	rng := newXorshift(31)
	for i := 0; i < 80; i++ {
		_, err := e.Insert(ctx, randomUnitVector(rng, 8), nil)
		require.NoError(t, err)
	}

	numPoints, err := s.NumPoints(ctx)
	require.NoError(t, err)
	numLayers, err := s.NumLayers(ctx)
	require.NoError(t, err)

	distFn, err := distance.For(cfg.DistanceType)
	require.NoError(t, err)

	for layer := 0; layer < int(numLayers); layer++ {
		for id := model.ID(0); id < model.ID(numPoints); id++ {
			neighbors, err := s.GetNeighbors(ctx, layer, id)
			if err != nil {
				continue
			}
			pv, err := s.GetPoint(ctx, id)
			require.NoError(t, err)
			for _, n := range neighbors {
				nv, err := s.GetPoint(ctx, n.ID)
				require.NoError(t, err)
				want := distFn(pv, nv)
				assert.InDelta(t, float64(want), float64(n.Distance), 1e-5)
			}
		}
	}
}

func TestPropertyEntryPointDominance(t *testing.T) {
	cfg := hnsw.DefaultConfig()
	cfg.M = 4
	cfg.Dimension = 6
	e, s := newEngineWithStore(t, cfg)
	ctx := context.Background()

	rng := newXorshift(41)
	for i := 0; i < 100; i++ {
		_, err := e.Insert(ctx, randomUnitVector(rng, 6), nil)
		require.NoError(t, err)
	}

	ep, ok, err := s.GetEntryPoint(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	numLayers, err := s.NumLayers(ctx)
	require.NoError(t, err)

	for layer := 0; layer < int(numLayers); layer++ {
		_, err := s.GetNeighbors(ctx, layer, ep)
		assert.NoError(t, err, "entry point must exist at every layer up to num_layers-1")
	}
}

// TestBuildThenSearchNearFirstAndThirdPoint is the literal build-and-self-hit scenario:
// three 4-D points, querying near the first and third.
func TestBuildThenSearchNearFirstAndThirdPoint(t *testing.T) {
	e := newEngine(t, 4)
	ctx := context.Background()

	id0, err := e.Insert(ctx, []float32{1, 0, 0, 0}, model.Metadata(`a`))
	require.NoError(t, err)
	_, err = e.Insert(ctx, []float32{0, 1, 0, 0}, model.Metadata(`b`))
	require.NoError(t, err)
	id2, err := e.Insert(ctx, []float32{1, 1, 0, 0}, model.Metadata(`c`))
	require.NoError(t, err)

	results, err := e.KNNSearch(ctx, []float32{1, 0.1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, id0, results[0].ID)
	assert.Equal(t, id2, results[1].ID)
	assert.LessOrEqual(t, results[0].Distance, results[1].Distance)
	assert.Equal(t, model.Metadata(`a`), results[0].Metadata)
	assert.Equal(t, model.Metadata(`c`), results[1].Metadata)
}

// TestExactRecoveryOfMiddlePoint inserts three points and directly gets the middle one.
func TestExactRecoveryOfMiddlePoint(t *testing.T) {
	e := newEngine(t, 4)
	ctx := context.Background()

	_, err := e.Insert(ctx, []float32{1, 0, 0, 0}, model.Metadata(`a`))
	require.NoError(t, err)
	id1, err := e.Insert(ctx, []float32{0, 1, 0, 0}, model.Metadata(`b`))
	require.NoError(t, err)
	_, err = e.Insert(ctx, []float32{1, 1, 0, 0}, model.Metadata(`c`))
	require.NoError(t, err)

	vector, meta, err := e.GetVector(ctx, id1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1, 0, 0}, toFloat64Slice(vector), 1e-6)
	assert.Equal(t, model.Metadata(`b`), meta)
}

// TestDimensionMismatchRejectedAfterPriorInserts asserts an oversize/undersize vector is
// rejected before any write, leaving num_points unchanged.
func TestDimensionMismatchRejectedAfterPriorInserts(t *testing.T) {
	e := newEngine(t, 4)
	ctx := context.Background()

	for _, v := range [][]float32{{1, 0, 0, 0}, {0, 1, 0, 0}, {1, 1, 0, 0}} {
		_, err := e.Insert(ctx, v, nil)
		require.NoError(t, err)
	}

	_, err := e.Insert(ctx, []float32{1, 0, 0}, nil)
	require.Error(t, err)
	var dimErr *hnsw.DimensionMismatchError
	assert.ErrorAs(t, err, &dimErr)

	stats, err := e.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), stats.NumPoints)
}

func toFloat64Slice(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

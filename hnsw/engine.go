// Package hnsw implements the algorithmic core: layer selection,
// search_layer, select_neighbors, insert, and knn_search over a GraphStore.
// The Engine holds no long-lived graph state; every read and write goes
// through the store.
package hnsw

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/contextvault/hnswkv/distance"
	"github.com/contextvault/hnswkv/model"
)

// Engine is the HNSW algorithmic core bound to one GraphStore and Config.
// It is safe for a single writer plus any number of concurrent readers
// (knn_search/get_vector); concurrent Insert calls on the same Engine are a
// caller error, per the single-writer contract.
type Engine struct {
	store     GraphStore
	cfg       Config
	dimension int
	distFn    distance.Func
	rng       *rand.Rand
}

// New creates an Engine over store, validating cfg (including cfg.Dimension,
// the expected vector length for every subsequent Insert/KNNSearch call).
func New(store GraphStore, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	distFn, err := distance.For(cfg.DistanceType)
	if err != nil {
		return nil, &InvalidConfigError{Reason: err.Error()}
	}
	return &Engine{
		store:     store,
		cfg:       cfg,
		dimension: cfg.Dimension,
		distFn:    distFn,
		rng:       rand.New(rand.NewSource(1)),
	}, nil
}

// Dimension returns the vector length this Engine was opened with.
func (e *Engine) Dimension() int { return e.dimension }

// selectLayer samples layer = floor(-ln(U) * ml) for a new point, U uniform
// on (0,1]. A plain math/rand source suffices here since Insert is single-
// writer; no atomic RNG is needed.
func (e *Engine) selectLayer() int {
	u := 1 - e.rng.Float64() // (0,1], avoids log(0)
	return int(math.Floor(-math.Log(u) * e.cfg.ml()))
}

func (e *Engine) checkDimension(vector []float32) error {
	if len(vector) != e.dimension {
		return &DimensionMismatchError{Want: e.dimension, Got: len(vector)}
	}
	return nil
}

// searchLayer implements Algorithm 2: greedy best-first search within a
// single layer, returning results sorted ascending by distance and bounded
// to ef entries. Calling with ef=1 naturally yields the single closest node.
func (e *Engine) searchLayer(ctx context.Context, q []float32, entryPoints []item, ef, layer int) ([]item, error) {
	visited := newVisitedSet()
	candidates := newPriorityQueue(false)
	results := newPriorityQueue(true)

	for _, ep := range entryPoints {
		visited.Add(ep.id)
		candidates.push(ep)
		results.push(ep)
	}
	for results.Len() > ef {
		results.pop()
	}

	for candidates.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c, _ := candidates.pop()
		if f, ok := results.worst(); ok && c.distance > f.distance {
			break
		}

		neighbors, err := e.store.GetNeighbors(ctx, layer, c.id)
		if err != nil {
			return nil, err
		}

		var freshIDs []model.ID
		for _, n := range neighbors {
			if visited.Add(n.ID) {
				freshIDs = append(freshIDs, n.ID)
			}
		}
		if len(freshIDs) == 0 {
			continue
		}

		vectors, err := e.store.GetPoints(ctx, freshIDs)
		if err != nil {
			return nil, err
		}

		for i, id := range freshIDs {
			d := e.distFn(q, vectors[i])
			f, ok := results.worst()
			if !ok || d < f.distance || results.Len() < ef {
				it := item{id: id, distance: d}
				candidates.push(it)
				results.push(it)
				if results.Len() > ef {
					results.pop()
				}
			}
		}
	}

	return results.drain(), nil
}

// selectNeighbors implements Algorithm 4's literal "simple" heuristic:
// candidates sorted ascending are compared only against the current best of
// results, which in practice keeps the first M_max candidates in order. The
// stricter every-pair-compared variant is deliberately not implemented here.
func selectNeighbors(candidatesAscending []item, mMax int, keepPruned bool) []item {
	results := make([]item, 0, mMax)
	var discarded []item

	for _, e := range candidatesAscending {
		if len(results) == mMax {
			break
		}
		if len(results) == 0 || e.distance < results[0].distance {
			results = append(results, e)
		} else {
			discarded = append(discarded, e)
		}
	}

	if keepPruned {
		for _, e := range discarded {
			if len(results) == mMax {
				break
			}
			results = append(results, e)
		}
	}
	return results
}

func itemsToNeighbors(items []item) []model.Neighbor {
	out := make([]model.Neighbor, len(items))
	for i, it := range items {
		out[i] = model.Neighbor{ID: it.id, Distance: it.distance}
	}
	return out
}

func neighborsToItems(neighbors []model.Neighbor) []item {
	out := make([]item, len(neighbors))
	for i, n := range neighbors {
		out[i] = item{id: n.ID, distance: n.Distance}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].distance < out[j].distance })
	return out
}

// Insert implements Algorithm 1: route from the top layer down to the
// target layer with ef=1, then insert-and-link from min(L,l) down to 0,
// growing the graph if the new point's layer exceeds the current maximum.
func (e *Engine) Insert(ctx context.Context, vector []float32, meta model.Metadata) (model.ID, error) {
	if err := e.checkDimension(vector); err != nil {
		return 0, err
	}

	ep, hasEP, err := e.store.GetEntryPoint(ctx)
	if err != nil {
		return 0, err
	}
	L := -1
	if hasEP {
		numLayers, err := e.store.NumLayers(ctx)
		if err != nil {
			return 0, err
		}
		L = int(numLayers) - 1
	}

	l := e.selectLayer()

	id, err := e.store.NewPoint(ctx, vector)
	if err != nil {
		return 0, err
	}
	if len(meta) > 0 {
		if err := e.store.SetMetadata(ctx, id, meta); err != nil {
			return 0, err
		}
	}

	if !hasEP {
		for layer := 0; layer <= l; layer++ {
			if err := e.store.PromoteToNewLayer(ctx, id); err != nil {
				return 0, err
			}
		}
		if err := e.store.SetEntryPoint(ctx, id); err != nil {
			return 0, err
		}
		return id, nil
	}

	epVector, err := e.store.GetPoint(ctx, ep)
	if err != nil {
		return 0, err
	}
	curEP := []item{{id: ep, distance: e.distFn(vector, epVector)}}

	for lc := L; lc >= l+1; lc-- {
		curEP, err = e.searchLayer(ctx, vector, curEP, 1, lc)
		if err != nil {
			return 0, err
		}
	}

	top := L
	if l < top {
		top = l
	}
	for lc := top; lc >= 0; lc-- {
		w, err := e.searchLayer(ctx, vector, curEP, e.cfg.EFConstruction, lc)
		if err != nil {
			return 0, err
		}
		curEP = w

		mMax := e.cfg.MMax(lc)
		chosen := selectNeighbors(w, mMax, true)
		chosenIDs := make([]model.ID, len(chosen))
		for i, c := range chosen {
			chosenIDs[i] = c.id
		}

		chosenAdjacency, err := e.store.GetNeighborsMany(ctx, lc, chosenIDs)
		if err != nil {
			return 0, err
		}

		updated := make(map[model.ID][]model.Neighbor, len(chosen))
		for _, c := range chosen {
			adj := append(chosenAdjacency[c.id], model.Neighbor{ID: id, Distance: c.distance})
			if len(adj) > mMax {
				pruned := selectNeighbors(neighborsToItems(adj), mMax, true)
				adj = itemsToNeighbors(pruned)
			}
			updated[c.id] = adj
		}

		if err := e.store.UpsertNeighbors(ctx, lc, id, itemsToNeighbors(chosen)); err != nil {
			return 0, err
		}
		if err := e.store.UpsertNeighborsMany(ctx, lc, updated); err != nil {
			return 0, err
		}
	}

	if l > L {
		for layer := L + 1; layer <= l; layer++ {
			if err := e.store.PromoteToNewLayer(ctx, id); err != nil {
				return 0, err
			}
		}
		if err := e.store.SetEntryPoint(ctx, id); err != nil {
			return 0, err
		}
	}

	return id, nil
}

// KNNSearch implements Algorithm 5: route greedily with ef=1 down to layer
// 1, then a bounded search at layer 0 with ef = max(EFSearch, k).
func (e *Engine) KNNSearch(ctx context.Context, query []float32, k int) ([]model.Result, error) {
	if err := e.checkDimension(query); err != nil {
		return nil, err
	}
	if err := e.cfg.validateSearchK(k); err != nil {
		return nil, err
	}

	ep, hasEP, err := e.store.GetEntryPoint(ctx)
	if err != nil {
		return nil, err
	}
	if !hasEP {
		return []model.Result{}, nil
	}

	epVector, err := e.store.GetPoint(ctx, ep)
	if err != nil {
		return nil, err
	}
	curEP := []item{{id: ep, distance: e.distFn(query, epVector)}}

	numLayers, err := e.store.NumLayers(ctx)
	if err != nil {
		return nil, err
	}
	for lc := int(numLayers) - 1; lc >= 1; lc-- {
		curEP, err = e.searchLayer(ctx, query, curEP, 1, lc)
		if err != nil {
			return nil, err
		}
	}

	ef := e.cfg.EFSearch
	if k > ef {
		ef = k
	}
	results, err := e.searchLayer(ctx, query, curEP, ef, 0)
	if err != nil {
		return nil, err
	}

	if len(results) > k {
		results = results[:k]
	}

	ids := make([]model.ID, len(results))
	for i, r := range results {
		ids[i] = r.id
	}
	metas, err := e.store.GetMetadataMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]model.Result, len(results))
	for i, r := range results {
		out[i] = model.Result{ID: r.id, Distance: r.distance, Metadata: metas[i]}
	}
	return out, nil
}

// GetVector implements get_vector: straight reads from the GraphStore.
func (e *Engine) GetVector(ctx context.Context, id model.ID) ([]float32, model.Metadata, error) {
	numPoints, err := e.store.NumPoints(ctx)
	if err != nil {
		return nil, nil, err
	}
	if uint32(id) >= numPoints {
		return nil, nil, &NotFoundError{ID: id}
	}
	vector, err := e.store.GetPoint(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	meta, _, err := e.store.GetMetadata(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return vector, meta, nil
}

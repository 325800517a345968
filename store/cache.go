package store

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/contextvault/hnswkv/model"
)

// layerNodeCacheKey identifies a cached LayerNode by layer and id, since the
// same id's adjacency differs per layer.
type layerNodeCacheKey struct {
	layer int
	id    model.ID
}

// CachingStore decorates a Store with an in-process LRU read cache over
// points and layer nodes. Every write-through invalidates the corresponding
// cache entry so a cache hit can never serve a value a concurrent reload
// would contradict.
type CachingStore struct {
	*Store
	points *lru.Cache[model.ID, []float32]
	nodes  *lru.Cache[layerNodeCacheKey, []model.Neighbor]
}

// NewCaching wraps s with an LRU cache of the given size for points and
// layer nodes each.
func NewCaching(s *Store, size int) (*CachingStore, error) {
	points, err := lru.New[model.ID, []float32](size)
	if err != nil {
		return nil, err
	}
	nodes, err := lru.New[layerNodeCacheKey, []model.Neighbor](size)
	if err != nil {
		return nil, err
	}
	return &CachingStore{Store: s, points: points, nodes: nodes}, nil
}

func (c *CachingStore) GetPoint(ctx context.Context, id model.ID) ([]float32, error) {
	if v, ok := c.points.Get(id); ok {
		return v, nil
	}
	v, err := c.Store.GetPoint(ctx, id)
	if err != nil {
		return nil, err
	}
	c.points.Add(id, v)
	return v, nil
}

func (c *CachingStore) GetNeighbors(ctx context.Context, layer int, id model.ID) ([]model.Neighbor, error) {
	key := layerNodeCacheKey{layer: layer, id: id}
	if v, ok := c.nodes.Get(key); ok {
		return v, nil
	}
	v, err := c.Store.GetNeighbors(ctx, layer, id)
	if err != nil {
		return nil, err
	}
	c.nodes.Add(key, v)
	return v, nil
}

func (c *CachingStore) UpsertNeighbors(ctx context.Context, layer int, id model.ID, neighbors []model.Neighbor) error {
	if err := c.Store.UpsertNeighbors(ctx, layer, id, neighbors); err != nil {
		return err
	}
	c.nodes.Remove(layerNodeCacheKey{layer: layer, id: id})
	return nil
}

func (c *CachingStore) UpsertNeighborsMany(ctx context.Context, layer int, byID map[model.ID][]model.Neighbor) error {
	if err := c.Store.UpsertNeighborsMany(ctx, layer, byID); err != nil {
		return err
	}
	for id := range byID {
		c.nodes.Remove(layerNodeCacheKey{layer: layer, id: id})
	}
	return nil
}

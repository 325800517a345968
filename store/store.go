// Package store implements the Graph Store: typed, namespaced persistence
// operations the HNSW engine depends on. It owns no long-lived graph state,
// only a kv.Adapter and a codec.Codec — every read goes through the
// adapter and every mutation is a write-through.
package store

import (
	"context"
	"strconv"

	"github.com/contextvault/hnswkv/codec"
	"github.com/contextvault/hnswkv/kv"
	"github.com/contextvault/hnswkv/model"
)

// Store implements every Graph Store operation the hnsw engine needs,
// delegating persistence to a kv.Adapter via a codec.Codec.
type Store struct {
	adapter *kv.Adapter
	codec   codec.Codec
}

// New creates a Store over adapter using c for Point/LayerNode encoding.
// A nil c uses codec.Default.
func New(adapter *kv.Adapter, c codec.Codec) *Store {
	if c == nil {
		c = codec.Default
	}
	return &Store{adapter: adapter, codec: c}
}

func parseCounter(raw []byte, ok bool) (uint32, error) {
	if !ok {
		return 0, nil
	}
	n, err := strconv.ParseUint(string(raw), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

// GetEntryPoint reads "ep". ok is false when the index is empty.
func (s *Store) GetEntryPoint(ctx context.Context) (id model.ID, ok bool, err error) {
	raw, present, err := s.adapter.Get(ctx, keyEP)
	if err != nil {
		return 0, false, err
	}
	if !present {
		return 0, false, nil
	}
	n, err := strconv.ParseUint(string(raw), 10, 32)
	if err != nil {
		return 0, false, err
	}
	return model.ID(n), true, nil
}

// SetEntryPoint overwrites "ep".
func (s *Store) SetEntryPoint(ctx context.Context, id model.ID) error {
	return s.adapter.Set(ctx, keyEP, []byte(strconv.FormatUint(uint64(id), 10)))
}

// NumPoints reads "points", defaulting to 0 when absent.
func (s *Store) NumPoints(ctx context.Context) (uint32, error) {
	raw, ok, err := s.adapter.Get(ctx, keyPoints)
	if err != nil {
		return 0, err
	}
	return parseCounter(raw, ok)
}

// NumLayers reads "layers", defaulting to 0 when absent.
func (s *Store) NumLayers(ctx context.Context) (uint32, error) {
	raw, ok, err := s.adapter.Get(ctx, keyLayers)
	if err != nil {
		return 0, err
	}
	return parseCounter(raw, ok)
}

// NewPoint assigns id = NumPoints(), writes the encoded Point, and advances
// the "points" counter. Not atomic with respect to a concurrent insert on
// the same index; callers serialize writes per index.
func (s *Store) NewPoint(ctx context.Context, vector []float32) (model.ID, error) {
	next, err := s.NumPoints(ctx)
	if err != nil {
		return 0, err
	}

	data, err := s.codec.EncodePoint(next, vector)
	if err != nil {
		return 0, err
	}
	if err := s.adapter.Set(ctx, pointKey(next), data); err != nil {
		return 0, err
	}
	if err := s.adapter.Set(ctx, keyPoints, []byte(strconv.FormatUint(uint64(next+1), 10))); err != nil {
		return 0, err
	}
	return model.ID(next), nil
}

// GetPoint reads and decodes a single Point's vector.
func (s *Store) GetPoint(ctx context.Context, id model.ID) ([]float32, error) {
	raw, ok, err := s.adapter.Get(ctx, pointKey(uint32(id)))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFoundPoint(uint32(id))
	}
	_, vector, err := s.codec.DecodePoint(raw)
	if err != nil {
		return nil, err
	}
	return vector, nil
}

// GetPoints is a batched GetPoint, preserving input order. It fails fast on
// the first absent id encountered.
func (s *Store) GetPoints(ctx context.Context, ids []model.ID) ([][]float32, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = pointKey(uint32(id))
	}
	raws, err := s.adapter.GetMany(ctx, keys)
	if err != nil {
		return nil, err
	}

	vectors := make([][]float32, len(ids))
	for i, raw := range raws {
		if raw == nil {
			return nil, notFoundPoint(uint32(ids[i]))
		}
		_, v, err := s.codec.DecodePoint(raw)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}

// GetNeighbors reads a single LayerNode's adjacency map.
func (s *Store) GetNeighbors(ctx context.Context, layer int, id model.ID) ([]model.Neighbor, error) {
	raw, ok, err := s.adapter.Get(ctx, layerNodeKey(layer, uint32(id)))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFoundLayerNode(layer, uint32(id))
	}
	return decodeNeighbors(s.codec, raw)
}

// GetNeighborsMany is a batched GetNeighbors, returned keyed by id.
func (s *Store) GetNeighborsMany(ctx context.Context, layer int, ids []model.ID) (map[model.ID][]model.Neighbor, error) {
	if len(ids) == 0 {
		return map[model.ID][]model.Neighbor{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = layerNodeKey(layer, uint32(id))
	}
	raws, err := s.adapter.GetMany(ctx, keys)
	if err != nil {
		return nil, err
	}

	out := make(map[model.ID][]model.Neighbor, len(ids))
	for i, raw := range raws {
		if raw == nil {
			return nil, notFoundLayerNode(layer, uint32(ids[i]))
		}
		neighbors, err := decodeNeighbors(s.codec, raw)
		if err != nil {
			return nil, err
		}
		out[ids[i]] = neighbors
	}
	return out, nil
}

// UpsertNeighbors overwrites a single LayerNode's adjacency map.
func (s *Store) UpsertNeighbors(ctx context.Context, layer int, id model.ID, neighbors []model.Neighbor) error {
	data, err := encodeNeighbors(s.codec, uint32(id), layer, neighbors)
	if err != nil {
		return err
	}
	return s.adapter.Set(ctx, layerNodeKey(layer, uint32(id)), data)
}

// UpsertNeighborsMany is a batched overwrite of several LayerNodes' adjacency
// maps within the same layer.
func (s *Store) UpsertNeighborsMany(ctx context.Context, layer int, byID map[model.ID][]model.Neighbor) error {
	if len(byID) == 0 {
		return nil
	}
	pairs := make([]kv.Pair, 0, len(byID))
	for id, neighbors := range byID {
		data, err := encodeNeighbors(s.codec, uint32(id), layer, neighbors)
		if err != nil {
			return err
		}
		pairs = append(pairs, kv.Pair{Key: layerNodeKey(layer, uint32(id)), Value: data})
	}
	return s.adapter.SetMany(ctx, pairs)
}

// PromoteToNewLayer creates an empty adjacency map for id at the current
// NumLayers() and advances the "layers" counter.
//
// Single-writer contract: this reads then writes "layers" non-atomically;
// concurrent calls on the same index are a caller error and may lose
// updates. Callers serialize inserts per index.
func (s *Store) PromoteToNewLayer(ctx context.Context, id model.ID) error {
	layers, err := s.NumLayers(ctx)
	if err != nil {
		return err
	}
	if err := s.UpsertNeighbors(ctx, int(layers), id, nil); err != nil {
		return err
	}
	return s.adapter.Set(ctx, keyLayers, []byte(strconv.FormatUint(uint64(layers+1), 10)))
}

// GetMetadata reads the metadata blob for id, if ever set.
func (s *Store) GetMetadata(ctx context.Context, id model.ID) (model.Metadata, bool, error) {
	raw, ok, err := s.adapter.Get(ctx, metadataKey(uint32(id)))
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return model.Metadata(raw), true, nil
}

// GetMetadataMany is a batched GetMetadata; absent entries are nil.
func (s *Store) GetMetadataMany(ctx context.Context, ids []model.ID) ([]model.Metadata, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = metadataKey(uint32(id))
	}
	raws, err := s.adapter.GetMany(ctx, keys)
	if err != nil {
		return nil, err
	}
	out := make([]model.Metadata, len(raws))
	for i, raw := range raws {
		if raw != nil {
			out[i] = model.Metadata(raw)
		}
	}
	return out, nil
}

// SetMetadata overwrites the metadata blob for id.
func (s *Store) SetMetadata(ctx context.Context, id model.ID, data model.Metadata) error {
	return s.adapter.Set(ctx, metadataKey(uint32(id)), []byte(data))
}

func encodeNeighbors(c codec.Codec, id uint32, layer int, neighbors []model.Neighbor) ([]byte, error) {
	m := make(map[uint32]float32, len(neighbors))
	for _, n := range neighbors {
		m[uint32(n.ID)] = n.Distance
	}
	return c.EncodeLayerNode(id, layer, m)
}

func decodeNeighbors(c codec.Codec, raw []byte) ([]model.Neighbor, error) {
	_, _, m, err := c.DecodeLayerNode(raw)
	if err != nil {
		return nil, err
	}
	neighbors := make([]model.Neighbor, 0, len(m))
	for id, dist := range m {
		neighbors = append(neighbors, model.Neighbor{ID: model.ID(id), Distance: dist})
	}
	return neighbors, nil
}

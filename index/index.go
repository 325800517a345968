// Package index is the ambient façade: open_index/Index binding a contract
// namespace, a Config, and a backend Client into a ready-to-use HNSW index,
// with structured logging, metrics, optional caching, and optional rate
// limiting layered on top of the core hnsw/store/kv packages.
package index

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/contextvault/hnswkv/hnsw"
	"github.com/contextvault/hnswkv/kv"
	"github.com/contextvault/hnswkv/kv/ratelimitkv"
	"github.com/contextvault/hnswkv/model"
	"github.com/contextvault/hnswkv/store"
)

// Vector is a point's coordinates, exported at the Index boundary so
// callers need not import the model package for simple reads.
type Vector = []float32

// Metadata is the opaque bytes attached to a point.
type Metadata = model.Metadata

// Result is one ranked hit from KNNSearch.
type Result = model.Result

// Stats reports an Index's current state: point/layer counts, config, and
// ambient insert/search/split counters.
type Stats struct {
	hnsw.Stats
	Metrics BasicMetricsStats
}

// Index binds one HNSW engine to one contract namespace. It holds no
// long-lived graph state beyond the Engine's own Config; all persistent
// state lives behind the injected kv.Client.
type Index struct {
	namespace  string
	instanceID string
	engine     *hnsw.Engine
	logger     *Logger
	metrics    MetricsCollector
	basic      *BasicMetricsCollector
}

// InstanceID is a random identifier minted once per Open call. Namespaces are
// shared mutable state; when two processes (or two Open calls in the same
// process, e.g. one per goroutine pool) bind the same namespace, InstanceID
// lets logs and metrics attribute an operation to the handle that issued it
// rather than the namespace alone.
func (idx *Index) InstanceID() string {
	return idx.instanceID
}

// Open binds an Index handle to namespace over client, per open_index.
// Idempotent: if namespace already holds index state, Open binds to it;
// otherwise the namespace starts empty and springs into existence on the
// first write.
func Open(ctx context.Context, namespace string, cfg hnsw.Config, client kv.Client, opts ...Option) (*Index, error) {
	o := &options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.rateLimiter != nil {
		client = ratelimitkv.NewWithLimiter(client, o.rateLimiter)
	}

	adapter := kv.New(client, namespace)

	basic, _ := o.metrics.(*BasicMetricsCollector)
	adapter.OnSplit(func() {
		o.metrics.RecordSplit()
	})

	var graphStore hnsw.GraphStore
	plainStore := store.New(adapter, o.codec)
	if o.cacheSize > 0 {
		cached, err := store.NewCaching(plainStore, o.cacheSize)
		if err != nil {
			return nil, err
		}
		graphStore = cached
	} else {
		graphStore = plainStore
	}

	engine, err := hnsw.New(graphStore, cfg)
	if err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = NoopLogger()
	}

	instanceID := uuid.NewString()

	return &Index{
		namespace:  namespace,
		instanceID: instanceID,
		engine:     engine,
		logger:     logger.withNamespace(namespace).withInstance(instanceID),
		metrics:    o.metrics,
		basic:      basic,
	}, nil
}

// Insert implements Index.insert: append a vector (and optional metadata)
// and link it into the graph.
func (idx *Index) Insert(ctx context.Context, vector []float32, metadata Metadata) (model.ID, error) {
	start := time.Now()
	id, err := idx.engine.Insert(ctx, vector, metadata)
	idx.metrics.RecordInsert(time.Since(start), err)
	idx.logger.LogInsert(ctx, uint32(id), len(vector), err)
	return id, err
}

// KNNSearch implements Index.knn_search: the k nearest points to query.
func (idx *Index) KNNSearch(ctx context.Context, query []float32, k int) ([]Result, error) {
	start := time.Now()
	results, err := idx.engine.KNNSearch(ctx, query, k)
	idx.metrics.RecordSearch(k, time.Since(start), err)
	idx.logger.LogSearch(ctx, k, len(results), err)
	return results, err
}

// Get implements Index.get: a straight read of a point's vector and
// metadata.
func (idx *Index) Get(ctx context.Context, id model.ID) (Vector, Metadata, error) {
	vector, metadata, err := idx.engine.GetVector(ctx, id)
	idx.logger.LogGet(ctx, uint32(id), err)
	return vector, metadata, err
}

// Stats implements Index.stats: num_points, num_layers, config, plus the
// ambient insert/search/split counters when a BasicMetricsCollector is
// configured via WithMetrics.
func (idx *Index) Stats(ctx context.Context) (Stats, error) {
	engineStats, err := idx.engine.Stats(ctx)
	if err != nil {
		return Stats{}, err
	}
	s := Stats{Stats: engineStats}
	if idx.basic != nil {
		s.Metrics = idx.basic.GetStats()
	}
	return s, nil
}

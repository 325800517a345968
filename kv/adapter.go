package kv

import (
	"context"
	"errors"
)

// Adapter exposes a namespaced view over a Client, and guarantees batch
// operations succeed by adaptively splitting any batch a backend reports as
// oversize. Namespacing multiplexes multiple logical collections (tenants)
// over a single backend connection/client, matching the "contract id" of
// the memory-service layer: one Adapter per contract, one Client shared
// process-wide.
type Adapter struct {
	client    Client
	namespace string
	onSplit   func()
}

// New creates an Adapter bound to namespace over client.
func New(client Client, namespace string) *Adapter {
	return &Adapter{client: client, namespace: namespace}
}

// OnSplit registers fn to be called every time a batch operation bisects
// after a reported size limit. A nil fn disables the callback. Used to feed
// index.MetricsCollector.RecordSplit without coupling this package to it.
func (a *Adapter) OnSplit(fn func()) {
	a.onSplit = fn
}

func (a *Adapter) qualify(key string) string {
	return a.namespace + "/" + key
}

// Get reads one key.
func (a *Adapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return a.client.Get(ctx, a.qualify(key))
}

// Set writes one key. A single-key failure is never split further and
// propagates unchanged, per the splitting contract terminating at
// single-key granularity.
func (a *Adapter) Set(ctx context.Context, key string, value []byte) error {
	return a.client.Set(ctx, a.qualify(key), value)
}

// GetMany reads keys, preserving order and length, transparently splitting
// on a reported size limit.
func (a *Adapter) GetMany(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	qualified := make([]string, len(keys))
	for i, k := range keys {
		qualified[i] = a.qualify(k)
	}
	return a.getMany(ctx, qualified)
}

func (a *Adapter) getMany(ctx context.Context, keys []string) ([][]byte, error) {
	values, err := a.client.GetMany(ctx, keys)
	if err == nil {
		return values, nil
	}

	var sizeErr *SizeLimitError
	if !errors.As(err, &sizeErr) {
		return nil, err
	}
	if len(keys) <= 1 {
		// Splitting terminates at single-key granularity; a single-key
		// failure propagates.
		return nil, err
	}

	if a.onSplit != nil {
		a.onSplit()
	}
	mid := len(keys) / 2
	left, err := a.getMany(ctx, keys[:mid])
	if err != nil {
		return nil, err
	}
	right, err := a.getMany(ctx, keys[mid:])
	if err != nil {
		return nil, err
	}
	return append(left, right...), nil
}

// SetMany writes pairs, transparently splitting on a reported size limit.
func (a *Adapter) SetMany(ctx context.Context, pairs []Pair) error {
	if len(pairs) == 0 {
		return nil
	}
	qualified := make([]Pair, len(pairs))
	for i, p := range pairs {
		qualified[i] = Pair{Key: a.qualify(p.Key), Value: p.Value}
	}
	return a.setMany(ctx, qualified)
}

func (a *Adapter) setMany(ctx context.Context, pairs []Pair) error {
	err := a.client.SetMany(ctx, pairs)
	if err == nil {
		return nil
	}

	var sizeErr *SizeLimitError
	if !errors.As(err, &sizeErr) {
		return err
	}
	if len(pairs) <= 1 {
		return err
	}

	if a.onSplit != nil {
		a.onSplit()
	}
	mid := len(pairs) / 2
	if err := a.setMany(ctx, pairs[:mid]); err != nil {
		return err
	}
	return a.setMany(ctx, pairs[mid:])
}

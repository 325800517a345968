package memkv

import (
	"context"

	"github.com/contextvault/hnswkv/kv"
)

// FaultyClient wraps a kv.Client and injects a SizeLimitError whenever a
// batch operation exceeds MaxBatch keys/pairs. It is used to exercise the
// Adapter's adaptive-splitting path without a real backend.
type FaultyClient struct {
	Inner    kv.Client
	MaxBatch int

	// Calls counts invocations per operation name, for test assertions.
	Calls map[string]int
}

// NewFaultyClient wraps inner with a batch-size fault rule.
func NewFaultyClient(inner kv.Client, maxBatch int) *FaultyClient {
	return &FaultyClient{
		Inner:    inner,
		MaxBatch: maxBatch,
		Calls:    make(map[string]int),
	}
}

// Get implements kv.Client.
func (f *FaultyClient) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.Calls["get"]++
	return f.Inner.Get(ctx, key)
}

// GetMany implements kv.Client, failing with SizeLimitError above MaxBatch.
func (f *FaultyClient) GetMany(ctx context.Context, keys []string) ([][]byte, error) {
	f.Calls["get_many"]++
	if f.MaxBatch > 0 && len(keys) > f.MaxBatch {
		return nil, &kv.SizeLimitError{Operation: "get_many", Count: len(keys)}
	}
	return f.Inner.GetMany(ctx, keys)
}

// Set implements kv.Client.
func (f *FaultyClient) Set(ctx context.Context, key string, value []byte) error {
	f.Calls["set"]++
	return f.Inner.Set(ctx, key, value)
}

// SetMany implements kv.Client, failing with SizeLimitError above MaxBatch.
func (f *FaultyClient) SetMany(ctx context.Context, pairs []kv.Pair) error {
	f.Calls["set_many"]++
	if f.MaxBatch > 0 && len(pairs) > f.MaxBatch {
		return &kv.SizeLimitError{Operation: "set_many", Count: len(pairs)}
	}
	return f.Inner.SetMany(ctx, pairs)
}

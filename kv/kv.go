// Package kv defines the narrow interface hnswkv depends on for persistence,
// and an Adapter that turns it into the namespaced, batch-splitting access
// pattern the HNSW engine assumes.
//
// The core never imports a concrete backend SDK directly; it depends on
// Client, which a concrete backend (kv/memkv, kv/ddbkv, kv/s3kv) implements.
// No reverse dependency from the engine onto a storage SDK exists.
package kv

import "context"

// Client is the primitive operations hnswkv needs from an untrusted
// key-value backend. There are no size guarantees: a backend may reject a
// batch as oversize, signaled via SizeLimitError.
type Client interface {
	// Get reads one key. A missing key returns (nil, false, nil), never an error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// GetMany reads multiple keys in one round trip where possible.
	// The result slice has the same length and order as keys; a missing key
	// yields a nil entry, never an error.
	GetMany(ctx context.Context, keys []string) (values [][]byte, err error)

	// Set writes one key.
	Set(ctx context.Context, key string, value []byte) error

	// SetMany writes multiple keys in one round trip where possible.
	SetMany(ctx context.Context, pairs []Pair) error
}

// Pair is one key/value write.
type Pair struct {
	Key   string
	Value []byte
}

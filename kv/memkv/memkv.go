// Package memkv is an in-memory kv.Client, suitable for tests and
// single-process use: a mutex-guarded Go map with batch helpers.
package memkv

import (
	"context"
	"sync"

	"github.com/contextvault/hnswkv/kv"
)

// Client is an in-memory kv.Client backed by a Go map.
type Client struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New creates an empty in-memory Client.
func New() *Client {
	return &Client{data: make(map[string][]byte)}
}

// Get implements kv.Client.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.data[key]
	if !ok {
		return nil, false, nil
	}
	// Return a copy: callers must not observe mutations via aliasing.
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// GetMany implements kv.Client.
func (c *Client) GetMany(ctx context.Context, keys []string) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		if v, ok := c.data[k]; ok {
			cp := make([]byte, len(v))
			copy(cp, v)
			out[i] = cp
		}
	}
	return out, nil
}

// Set implements kv.Client.
func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	c.data[key] = cp
	return nil
}

// SetMany implements kv.Client.
func (c *Client) SetMany(ctx context.Context, pairs []kv.Pair) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range pairs {
		cp := make([]byte, len(p.Value))
		copy(cp, p.Value)
		c.data[p.Key] = cp
	}
	return nil
}

// Len returns the number of keys currently stored. Test helper only.
func (c *Client) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Package ratelimitkv decorates a kv.Client with per-contract call
// throttling via a golang.org/x/time/rate.Limiter, so one noisy tenant's
// batch insert can't starve others sharing the same backend.
package ratelimitkv

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/contextvault/hnswkv/kv"
)

// Client wraps a kv.Client, blocking each call on a token-bucket limiter
// before delegating to Inner. GetMany and SetMany consume one token per key
// or pair, charging proportionally to the size of the operation rather than
// per call.
type Client struct {
	Inner   kv.Client
	limiter *rate.Limiter
}

// New wraps inner with a limiter allowing ratePerSec operations (or
// keys/pairs, for batch calls) per second, with burst as the maximum instant
// allowance. A ratePerSec of 0 disables throttling.
func New(inner kv.Client, ratePerSec float64, burst int) *Client {
	var limiter *rate.Limiter
	if ratePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSec), burst)
	}
	return &Client{Inner: inner, limiter: limiter}
}

// NewWithLimiter wraps inner with a caller-constructed limiter. A nil
// limiter disables throttling.
func NewWithLimiter(inner kv.Client, limiter *rate.Limiter) *Client {
	return &Client{Inner: inner, limiter: limiter}
}

func (c *Client) wait(ctx context.Context, n int) error {
	if c.limiter == nil || n <= 0 {
		return nil
	}
	return c.limiter.WaitN(ctx, n)
}

// Get implements kv.Client.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := c.wait(ctx, 1); err != nil {
		return nil, false, err
	}
	return c.Inner.Get(ctx, key)
}

// GetMany implements kv.Client, charging one token per requested key.
func (c *Client) GetMany(ctx context.Context, keys []string) ([][]byte, error) {
	if err := c.wait(ctx, len(keys)); err != nil {
		return nil, err
	}
	return c.Inner.GetMany(ctx, keys)
}

// Set implements kv.Client.
func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	if err := c.wait(ctx, 1); err != nil {
		return err
	}
	return c.Inner.Set(ctx, key, value)
}

// SetMany implements kv.Client, charging one token per written pair.
func (c *Client) SetMany(ctx context.Context, pairs []kv.Pair) error {
	if err := c.wait(ctx, len(pairs)); err != nil {
		return err
	}
	return c.Inner.SetMany(ctx, pairs)
}

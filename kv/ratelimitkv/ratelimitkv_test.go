package ratelimitkv_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contextvault/hnswkv/kv"
	"github.com/contextvault/hnswkv/kv/memkv"
	"github.com/contextvault/hnswkv/kv/ratelimitkv"
)

func TestRateLimitClientPassesThroughWithoutLimit(t *testing.T) {
	c := ratelimitkv.New(memkv.New(), 0, 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)
}

func TestRateLimitClientRejectsOnCanceledContext(t *testing.T) {
	c := ratelimitkv.New(memkv.New(), 1, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The two-pair batch fits within the burst of 2, so the only reason the
	// wait can fail is the canceled context; it must fail rather than block.
	err := c.SetMany(ctx, []kv.Pair{{Key: "a", Value: []byte("1")}, {Key: "b", Value: []byte("2")}})
	assert.Error(t, err)
}

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLZ4CodecPointRoundTrip(t *testing.T) {
	c := LZ4Codec{Inner: Binary{}}
	vec := []float32{1, 0.5, -2.25, 0}

	data, err := c.EncodePoint(7, vec)
	require.NoError(t, err)

	id, got, err := c.DecodePoint(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), id)
	assert.Equal(t, vec, got)
}

func TestLZ4CodecLayerNodeRoundTrip(t *testing.T) {
	c := LZ4Codec{Inner: Binary{}}
	neighbors := map[uint32]float32{1: 0.1, 2: 0.2, 3: 0.3}

	data, err := c.EncodeLayerNode(9, 2, neighbors)
	require.NoError(t, err)

	id, level, got, err := c.DecodeLayerNode(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(9), id)
	assert.Equal(t, 2, level)
	assert.Equal(t, neighbors, got)
}

func TestLZ4CodecEmptyLayerNode(t *testing.T) {
	c := LZ4Codec{Inner: Binary{}}
	data, err := c.EncodeLayerNode(1, 0, map[uint32]float32{})
	require.NoError(t, err)

	id, level, got, err := c.DecodeLayerNode(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), id)
	assert.Equal(t, 0, level)
	assert.Empty(t, got)
}

func TestLZ4CodecName(t *testing.T) {
	c := LZ4Codec{Inner: Binary{}}
	assert.Equal(t, "binary+lz4", c.Name())
}

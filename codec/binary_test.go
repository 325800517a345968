package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryPointRoundTrip(t *testing.T) {
	c := Binary{}
	vec := []float32{1, 0.5, -2.25, 0}

	data, err := c.EncodePoint(7, vec)
	require.NoError(t, err)

	id, got, err := c.DecodePoint(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), id)
	assert.Equal(t, vec, got)
}

func TestBinaryLayerNodeRoundTrip(t *testing.T) {
	c := Binary{}
	neighbors := map[uint32]float32{1: 0.1, 2: 0.2, 3: 0.3}

	data, err := c.EncodeLayerNode(9, 2, neighbors)
	require.NoError(t, err)

	id, level, got, err := c.DecodeLayerNode(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(9), id)
	assert.Equal(t, 2, level)
	assert.Equal(t, neighbors, got)
}

func TestBinaryLayerNodeEmpty(t *testing.T) {
	c := Binary{}
	data, err := c.EncodeLayerNode(1, 0, map[uint32]float32{})
	require.NoError(t, err)

	id, level, got, err := c.DecodeLayerNode(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), id)
	assert.Equal(t, 0, level)
	assert.Empty(t, got)
}

func TestDecodePointTruncated(t *testing.T) {
	c := Binary{}
	_, _, err := c.DecodePoint([]byte{1, 2, 3})
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
}

func TestDecodePointDimensionMismatch(t *testing.T) {
	c := Binary{}
	data, err := c.EncodePoint(1, []float32{1, 2, 3})
	require.NoError(t, err)
	// Truncate the last float to create a declared/actual length mismatch.
	corrupt := data[:len(data)-1]
	_, _, err = c.DecodePoint(corrupt)
	require.Error(t, err)
}

func TestBase64CodecRoundTrip(t *testing.T) {
	c := Base64Codec{Inner: Binary{}}
	vec := []float32{3.14, -1}

	data, err := c.EncodePoint(42, vec)
	require.NoError(t, err)

	id, got, err := c.DecodePoint(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), id)
	assert.Equal(t, vec, got)
}

func TestCompressingCodecRoundTrip(t *testing.T) {
	c := &CompressingCodec{Inner: Binary{}}
	neighbors := map[uint32]float32{5: 1.5, 6: 2.5}

	data, err := c.EncodeLayerNode(3, 1, neighbors)
	require.NoError(t, err)

	id, level, got, err := c.DecodeLayerNode(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), id)
	assert.Equal(t, 1, level)
	assert.Equal(t, neighbors, got)
}

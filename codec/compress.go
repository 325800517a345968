package codec

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// CompressingCodec wraps another Codec with zstd compression. LayerNode
// payloads at high-degree layers and large-dimension vectors are the
// payload shapes that most benefit; a single encoder and decoder are built
// lazily on first use and shared, since zstd encoder/decoder construction is
// comparatively expensive.
type CompressingCodec struct {
	Inner Codec

	encOnce sync.Once
	enc     *zstd.Encoder
	encErr  error

	decOnce sync.Once
	dec     *zstd.Decoder
	decErr  error
}

// Name returns the wrapped codec's name suffixed with "+zstd".
func (c *CompressingCodec) Name() string { return c.Inner.Name() + "+zstd" }

func (c *CompressingCodec) encoder() (*zstd.Encoder, error) {
	c.encOnce.Do(func() {
		c.enc, c.encErr = zstd.NewWriter(nil)
	})
	return c.enc, c.encErr
}

func (c *CompressingCodec) decoder() (*zstd.Decoder, error) {
	c.decOnce.Do(func() {
		c.dec, c.decErr = zstd.NewReader(nil)
	})
	return c.dec, c.decErr
}

func (c *CompressingCodec) compress(raw []byte) ([]byte, error) {
	enc, err := c.encoder()
	if err != nil {
		return nil, err
	}
	return enc.EncodeAll(raw, nil), nil
}

func (c *CompressingCodec) decompress(data []byte) ([]byte, error) {
	dec, err := c.decoder()
	if err != nil {
		return nil, err
	}
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("codec: zstd decode: %w", err)
	}
	return out, nil
}

// EncodePoint encodes then compresses.
func (c *CompressingCodec) EncodePoint(id uint32, vector []float32) ([]byte, error) {
	raw, err := c.Inner.EncodePoint(id, vector)
	if err != nil {
		return nil, err
	}
	return c.compress(raw)
}

// DecodePoint decompresses then decodes.
func (c *CompressingCodec) DecodePoint(data []byte) (uint32, []float32, error) {
	raw, err := c.decompress(data)
	if err != nil {
		return 0, nil, err
	}
	return c.Inner.DecodePoint(raw)
}

// EncodeLayerNode encodes then compresses.
func (c *CompressingCodec) EncodeLayerNode(id uint32, level int, neighbors map[uint32]float32) ([]byte, error) {
	raw, err := c.Inner.EncodeLayerNode(id, level, neighbors)
	if err != nil {
		return nil, err
	}
	return c.compress(raw)
}

// DecodeLayerNode decompresses then decodes.
func (c *CompressingCodec) DecodeLayerNode(data []byte) (uint32, int, map[uint32]float32, error) {
	raw, err := c.decompress(data)
	if err != nil {
		return 0, 0, nil, err
	}
	return c.Inner.DecodeLayerNode(raw)
}

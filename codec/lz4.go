package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// lz4BlockHeaderSize is the [UncompressedSize uint32][CompressedSize uint32]
// header prefixed to every compressed block. CompressedSize == 0 means the
// block is stored uncompressed (compression didn't help, or the input was
// empty).
const lz4BlockHeaderSize = 8

// LZ4Codec wraps another Codec with LZ4 block compression: a faster, lower
// ratio alternative to CompressingCodec's zstd, better suited to
// frequently-rewritten LayerNode payloads where encode latency matters more
// than bytes on the wire.
type LZ4Codec struct {
	Inner Codec
}

// Name returns the wrapped codec's name suffixed with "+lz4".
func (c LZ4Codec) Name() string { return c.Inner.Name() + "+lz4" }

func lz4Compress(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return make([]byte, lz4BlockHeaderSize), nil
	}

	bound := lz4.CompressBlockBound(len(raw))
	dst := make([]byte, bound)
	n, err := lz4.CompressBlock(raw, dst, nil)
	if err != nil {
		return nil, fmt.Errorf("codec: lz4 compress: %w", err)
	}

	if n == 0 || n >= len(raw) {
		// Incompressible: store the raw bytes with CompressedSize=0.
		out := make([]byte, lz4BlockHeaderSize+len(raw))
		binary.LittleEndian.PutUint32(out[0:4], uint32(len(raw)))
		binary.LittleEndian.PutUint32(out[4:8], 0)
		copy(out[lz4BlockHeaderSize:], raw)
		return out, nil
	}

	out := make([]byte, lz4BlockHeaderSize+n)
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(raw)))
	binary.LittleEndian.PutUint32(out[4:8], uint32(n))
	copy(out[lz4BlockHeaderSize:], dst[:n])
	return out, nil
}

func lz4Decompress(data []byte) ([]byte, error) {
	if len(data) < lz4BlockHeaderSize {
		return nil, &DecodeError{What: "lz4 block", Reason: "truncated header"}
	}
	uncompressedSize := binary.LittleEndian.Uint32(data[0:4])
	compressedSize := binary.LittleEndian.Uint32(data[4:8])
	if uncompressedSize == 0 {
		return []byte{}, nil
	}

	if compressedSize == 0 {
		if uint32(len(data)) < lz4BlockHeaderSize+uncompressedSize {
			return nil, &DecodeError{What: "lz4 block", Reason: "truncated body"}
		}
		return data[lz4BlockHeaderSize : lz4BlockHeaderSize+uncompressedSize], nil
	}

	if uint32(len(data)) < lz4BlockHeaderSize+compressedSize {
		return nil, &DecodeError{What: "lz4 block", Reason: "truncated body"}
	}
	out := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(data[lz4BlockHeaderSize:lz4BlockHeaderSize+compressedSize], out)
	if err != nil {
		return nil, fmt.Errorf("codec: lz4 decompress: %w", err)
	}
	if uint32(n) != uncompressedSize {
		return nil, &DecodeError{What: "lz4 block", Reason: "decompressed size mismatch"}
	}
	return out, nil
}

// EncodePoint encodes then compresses.
func (c LZ4Codec) EncodePoint(id uint32, vector []float32) ([]byte, error) {
	raw, err := c.Inner.EncodePoint(id, vector)
	if err != nil {
		return nil, err
	}
	return lz4Compress(raw)
}

// DecodePoint decompresses then decodes.
func (c LZ4Codec) DecodePoint(data []byte) (uint32, []float32, error) {
	raw, err := lz4Decompress(data)
	if err != nil {
		return 0, nil, err
	}
	return c.Inner.DecodePoint(raw)
}

// EncodeLayerNode encodes then compresses.
func (c LZ4Codec) EncodeLayerNode(id uint32, level int, neighbors map[uint32]float32) ([]byte, error) {
	raw, err := c.Inner.EncodeLayerNode(id, level, neighbors)
	if err != nil {
		return nil, err
	}
	return lz4Compress(raw)
}

// DecodeLayerNode decompresses then decodes.
func (c LZ4Codec) DecodeLayerNode(data []byte) (uint32, int, map[uint32]float32, error) {
	raw, err := lz4Decompress(data)
	if err != nil {
		return 0, 0, nil, err
	}
	return c.Inner.DecodeLayerNode(raw)
}

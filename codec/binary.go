package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Binary is the default, compact Codec: length-prefixed fields, 32-bit ints,
// 32-bit floats. Preferred over JSON because adjacency lists and vectors
// dominate payload size and KV backends often bill or bound by bytes.
type Binary struct{}

// Name returns "binary".
func (Binary) Name() string { return "binary" }

const (
	kindPoint     byte = 0
	kindLayerNode byte = 1
)

// EncodePoint encodes a Point as: header | kind | id | dimension | float32*dimension.
func (Binary) EncodePoint(id uint32, vector []float32) ([]byte, error) {
	buf := make([]byte, 0, 6+1+4+4+4*len(vector))
	buf = writeHeader(buf)
	buf = append(buf, kindPoint)
	buf = appendUint32(buf, id)
	buf = appendUint32(buf, uint32(len(vector)))
	for _, f := range vector {
		buf = appendFloat32(buf, f)
	}
	return buf, nil
}

// DecodePoint is the inverse of EncodePoint.
func (Binary) DecodePoint(data []byte) (id uint32, vector []float32, err error) {
	body, err := readHeader(data, "point")
	if err != nil {
		return 0, nil, err
	}
	if len(body) < 1+4+4 {
		return 0, nil, &DecodeError{What: "point", Reason: "truncated body"}
	}
	if body[0] != kindPoint {
		return 0, nil, &DecodeError{What: "point", Reason: fmt.Sprintf("unexpected kind byte %d", body[0])}
	}
	body = body[1:]
	id = binary.LittleEndian.Uint32(body[0:4])
	dim := binary.LittleEndian.Uint32(body[4:8])
	body = body[8:]
	if uint64(len(body)) != uint64(dim)*4 {
		return 0, nil, &DecodeError{What: "point", Reason: fmt.Sprintf("declared dimension %d disagrees with payload length %d", dim, len(body))}
	}
	vector = make([]float32, dim)
	for i := range vector {
		vector[i] = readFloat32(body[i*4 : i*4+4])
	}
	return id, vector, nil
}

// EncodeLayerNode encodes a LayerNode as:
// header | kind | id | level | count | (neighbor_id | distance)*count.
// Map iteration order is not preserved; key order is not part of the contract.
func (Binary) EncodeLayerNode(id uint32, level int, neighbors map[uint32]float32) ([]byte, error) {
	if level < 0 {
		return nil, fmt.Errorf("codec: negative layer %d", level)
	}
	buf := make([]byte, 0, 6+1+4+4+4+8*len(neighbors))
	buf = writeHeader(buf)
	buf = append(buf, kindLayerNode)
	buf = appendUint32(buf, id)
	buf = appendUint32(buf, uint32(level))
	buf = appendUint32(buf, uint32(len(neighbors)))
	for nid, dist := range neighbors {
		buf = appendUint32(buf, nid)
		buf = appendFloat32(buf, dist)
	}
	return buf, nil
}

// DecodeLayerNode is the inverse of EncodeLayerNode.
func (Binary) DecodeLayerNode(data []byte) (id uint32, level int, neighbors map[uint32]float32, err error) {
	body, err := readHeader(data, "layer_node")
	if err != nil {
		return 0, 0, nil, err
	}
	if len(body) < 1+4+4+4 {
		return 0, 0, nil, &DecodeError{What: "layer_node", Reason: "truncated body"}
	}
	if body[0] != kindLayerNode {
		return 0, 0, nil, &DecodeError{What: "layer_node", Reason: fmt.Sprintf("unexpected kind byte %d", body[0])}
	}
	body = body[1:]
	id = binary.LittleEndian.Uint32(body[0:4])
	lvl := binary.LittleEndian.Uint32(body[4:8])
	count := binary.LittleEndian.Uint32(body[8:12])
	body = body[12:]
	if uint64(len(body)) != uint64(count)*8 {
		return 0, 0, nil, &DecodeError{What: "layer_node", Reason: fmt.Sprintf("declared neighbor count %d disagrees with payload length %d", count, len(body))}
	}
	neighbors = make(map[uint32]float32, count)
	for i := uint32(0); i < count; i++ {
		off := i * 8
		nid := binary.LittleEndian.Uint32(body[off : off+4])
		dist := readFloat32(body[off+4 : off+8])
		neighbors[nid] = dist
	}
	return id, int(lvl), neighbors, nil
}

func appendUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendFloat32(buf []byte, f float32) []byte {
	return appendUint32(buf, math.Float32bits(f))
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

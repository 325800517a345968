package codec

import "encoding/base64"

// Base64Codec wraps another Codec so its output is safe for string-only KV
// backends that reject arbitrary binary values. It is the "textual fallback"
// called out by the core's encoding contract: encode as base64 of the binary
// form.
type Base64Codec struct {
	Inner Codec
}

// Name returns the wrapped codec's name suffixed with "+base64".
func (c Base64Codec) Name() string { return c.Inner.Name() + "+base64" }

// EncodePoint encodes then base64-encodes.
func (c Base64Codec) EncodePoint(id uint32, vector []float32) ([]byte, error) {
	raw, err := c.Inner.EncodePoint(id, vector)
	if err != nil {
		return nil, err
	}
	return []byte(base64.StdEncoding.EncodeToString(raw)), nil
}

// DecodePoint base64-decodes then decodes.
func (c Base64Codec) DecodePoint(data []byte) (uint32, []float32, error) {
	raw, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return 0, nil, &DecodeError{What: "point", Reason: "invalid base64: " + err.Error()}
	}
	return c.Inner.DecodePoint(raw)
}

// EncodeLayerNode encodes then base64-encodes.
func (c Base64Codec) EncodeLayerNode(id uint32, level int, neighbors map[uint32]float32) ([]byte, error) {
	raw, err := c.Inner.EncodeLayerNode(id, level, neighbors)
	if err != nil {
		return nil, err
	}
	return []byte(base64.StdEncoding.EncodeToString(raw)), nil
}

// DecodeLayerNode base64-decodes then decodes.
func (c Base64Codec) DecodeLayerNode(data []byte) (uint32, int, map[uint32]float32, error) {
	raw, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return 0, 0, nil, &DecodeError{What: "layer_node", Reason: "invalid base64: " + err.Error()}
	}
	return c.Inner.DecodeLayerNode(raw)
}

package store

import "strconv"

// Key names for the index-global counters and entry point, stable across
// backends since the Adapter namespaces every key by contract.
const (
	keyLayers = "layers"
	keyEP     = "ep"
	keyPoints = "points"
)

func pointKey(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}

func metadataKey(id uint32) string {
	return "m:" + strconv.FormatUint(uint64(id), 10)
}

func layerNodeKey(layer int, id uint32) string {
	return strconv.Itoa(layer) + "__" + strconv.FormatUint(uint64(id), 10)
}

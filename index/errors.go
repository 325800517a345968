package index

import (
	"github.com/contextvault/hnswkv/codec"
	"github.com/contextvault/hnswkv/hnsw"
	"github.com/contextvault/hnswkv/store"
)

// StatusCode maps a core error to an HTTP-style status class: validation
// errors and explicit not-found reads are 4xx, everything else is 5xx. The
// core itself never depends on net/http; this is the one ambient mapping
// every caller needs.
func StatusCode(err error) int {
	if err == nil {
		return 200
	}
	switch err.(type) {
	case *hnsw.DimensionMismatchError, *hnsw.InvalidConfigError:
		return 400
	case *hnsw.NotFoundError, *store.NotFoundError:
		return 404
	case *codec.DecodeError:
		return 500
	default:
		return 500
	}
}

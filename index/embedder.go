package index

import "context"

// Embedder turns text into a fixed-dimension vector. The core never calls
// it: a memory-service layer composes Embedder.Embed with Index.Insert /
// Index.KNNSearch on the caller's side. The core package never sees text,
// only vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

package hnsw

import "context"

// Stats reports an Engine's current index-global state.
type Stats struct {
	NumPoints uint32
	NumLayers uint32
	Config    Config
}

// Stats implements Index.stats(): num_points, num_layers, config.
func (e *Engine) Stats(ctx context.Context) (Stats, error) {
	numPoints, err := e.store.NumPoints(ctx)
	if err != nil {
		return Stats{}, err
	}
	numLayers, err := e.store.NumLayers(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{NumPoints: numPoints, NumLayers: numLayers, Config: e.cfg}, nil
}

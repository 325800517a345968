package store

import "fmt"

// NotFoundError reports a missing point or layer node. Absent metadata is
// not an error.
// Kind is one of "point", "layer_node"; for layer nodes Layer is meaningful.
type NotFoundError struct {
	Kind  string
	ID    uint32
	Layer int
}

func (e *NotFoundError) Error() string {
	if e.Kind == "layer_node" {
		return fmt.Sprintf("store: %s not found: layer=%d id=%d", e.Kind, e.Layer, e.ID)
	}
	return fmt.Sprintf("store: %s not found: id=%d", e.Kind, e.ID)
}

func notFoundPoint(id uint32) error {
	return &NotFoundError{Kind: "point", ID: id}
}

func notFoundLayerNode(layer int, id uint32) error {
	return &NotFoundError{Kind: "layer_node", Layer: layer, ID: id}
}

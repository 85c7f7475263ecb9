package record

import "errors"

var (
	// ErrNilContext indicates a node was created without a graph context.
	ErrNilContext = errors.New("record node requires a graph context")

	// ErrNilStorage indicates a node was created without storage.
	ErrNilStorage = errors.New("record node requires storage")
)

package task

import "errors"

var (
	// ErrRegistryFull indicates every registry slot is occupied.
	ErrRegistryFull = errors.New("task registry full")

	// ErrNilTarget indicates an attempt to register a nil target.
	ErrNilTarget = errors.New("nil task target")

	// ErrInvalidCapacity indicates a non-positive registry or queue capacity.
	ErrInvalidCapacity = errors.New("invalid capacity")
)

package graph

import "errors"

var (
	// ErrAlreadyRunning indicates Start was called on a running context.
	ErrAlreadyRunning = errors.New("graph context already running")

	// ErrInvalidPair indicates Pair was given nil or identical members.
	ErrInvalidPair = errors.New("invalid node pair")
)

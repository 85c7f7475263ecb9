// Package buffer holds the sample-buffer helpers shared by the render and
// control domains.
//
// A render tick works on a caller-owned []float64 of interleaved samples.
// When a tick has to hand samples to the control domain it copies them into
// a Block taken from a Pool. Pools are filled once at construction and hand
// blocks out through a lock-free free list, so Get and Put never allocate and
// never block.
package buffer

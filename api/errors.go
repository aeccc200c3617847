package api

import "errors"

// ErrorOutofMemory break cannot be extended any further.
var ErrorOutofMemory = errors.New("malloc.outofmemory")

// ErrorCorruption header sentinel mismatch, the application wrote
// past its block or passed a pointer the arena never produced.
// Panicking with this error is fatal, the free list can no longer
// be trusted.
var ErrorCorruption = errors.New("malloc.corruption")

// ErrorDoubleFree block is already parked in the free list.
var ErrorDoubleFree = errors.New("malloc.doublefree")

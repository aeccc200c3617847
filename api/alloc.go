package api

import "unsafe"

// Mallocer interface for custom memory management.
type Mallocer interface {
	// Alloc allocate a block of `n` bytes. Allocated memory is always
	// 16-byte aligned. Returns nil if the break cannot grow any
	// further.
	Alloc(n int64) unsafe.Pointer

	// Allocz allocate a zeroed block of count*elemsize bytes. Returns
	// nil if the product overflows or the break cannot grow.
	Allocz(count, elemsize int64) unsafe.Pointer

	// Realloc resize the block to `n` bytes, preserving its contents.
	// With a nil ptr behaves as Alloc, with a zero `n` behaves as
	// Free. Returns nil on failure, leaving the old block intact.
	Realloc(ptr unsafe.Pointer, n int64) unsafe.Pointer

	// Free the block back to the arena's free list.
	Free(ptr unsafe.Pointer)

	// Chunklen return the usable payload length of the block, can be
	// larger than the size requested from Alloc.
	Chunklen(ptr unsafe.Pointer) int64

	// Release arena and all its resources.
	Release()

	// Info of memory accounting for this arena.
	Info() (heap, alloc, overhead int64)
}

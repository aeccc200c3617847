// Package malloc supplies a dynamic memory allocator built over a raw
// break primitive, with a limited scope:
//
//  * Types and Functions exported by this package are not thread safe.
//  * The break only grows, memory is never given back to the OS until
//    the entire arena is Released.
//  * Blocks freed by the application are parked in an intrusive free
//    list and recycled by later allocations.
//  * Memory blocks allocated by this package will always be 16-byte
//    aligned.
//
// Arena is the allocator state, empty to begin with, that obtains
// address space from its break on demand. Allocation requests are
// first matched against the free list with a next-fit cursor, free
// blocks larger than the request are split, and freed blocks are
// immediately coalesced with their physically adjacent neighbours.
// Corrupted headers and double frees are detected when a block is
// freed, and treated as fatal.
package malloc

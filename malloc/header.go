package malloc

import "unsafe"

// Hdrsize size of the metadata record preceding every payload. Both
// header layouts fit in exactly these many bytes, keeping payloads
// aligned whenever headers are.
const Hdrsize = int64(16)

// Magic sentinel stamped on every allocated header, verified when the
// block comes back to the arena.
const Magic = uint32(0x01234567)

// allochdr metadata for a block handed out to the application. It
// occupies the same bytes that freenode occupies while the block is
// parked in the free list, the valid interpretation at any point is
// decided by reachability from the free-list head.
type allochdr struct {
	size  int64 // payload bytes, excluding this header
	magic uint32
	_     uint32
}

// freenode metadata for a block parked in the free list. The list is
// intrusive and unordered, next holds the address of the successor's
// header, zero for none.
type freenode struct {
	size int64 // payload bytes available, excluding this header
	next uintptr
}

func hdrat(addr uintptr) *allochdr {
	return (*allochdr)(unsafe.Pointer(addr))
}

func nodeat(addr uintptr) *freenode {
	return (*freenode)(unsafe.Pointer(addr))
}

// nodeend one byte past the node's full extent, header included.
func nodeend(addr uintptr) uintptr {
	return addr + uintptr(Hdrsize) + uintptr(nodeat(addr).size)
}

// header map a payload pointer back to its header address.
func header(ptr unsafe.Pointer) uintptr {
	return uintptr(ptr) - uintptr(Hdrsize)
}

// stamp write an allocated header at addr and return the payload
// pointer, destroying any free-node view of the same bytes.
func stamp(addr uintptr, size int64) unsafe.Pointer {
	hdr := hdrat(addr)
	hdr.size, hdr.magic = size, Magic
	return unsafe.Pointer(addr + uintptr(Hdrsize))
}

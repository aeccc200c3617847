package malloc

import "unsafe"

import "github.com/bnclabs/gobrk/api"

// Extender supplies fresh address space to the arena. Sbrk grows the
// break by `incr` bytes and returns the previous break address, so
// Sbrk(0) reads the current break. Returns api.ErrorOutofMemory when
// the address space is exhausted, in which case the break is
// untouched. All growth is monotonic, extenders never shrink.
type Extender interface {
	Sbrk(incr int64) (uintptr, error)

	// Release whatever backs the break. Addresses obtained earlier
	// are invalid after this.
	Release()
}

// membrk simulates the break over a single pre-reserved slab. Keeps
// arenas independent of the process break, so several can coexist and
// exhaustion is reproducible in tests.
type membrk struct {
	slab     []byte
	base     uintptr
	brkoff   int64 // offset of the break within slab
	capacity int64
}

func newmembrk(capacity int64) *membrk {
	if capacity <= 0 || capacity > Maxheapsize {
		panicerr("membrk capacity %v out of range", capacity)
	}
	slab := make([]byte, capacity)
	return &membrk{
		slab:     slab,
		base:     uintptr(unsafe.Pointer(&slab[0])),
		capacity: capacity,
	}
}

// Sbrk implement Extender{} interface.
func (brk *membrk) Sbrk(incr int64) (uintptr, error) {
	if brk.slab == nil {
		panicerr("membrk released")
	} else if incr < 0 {
		panicerr("membrk cannot shrink (%v)", incr)
	}
	if brk.brkoff+incr > brk.capacity {
		return 0, api.ErrorOutofMemory
	}
	prev := brk.base + uintptr(brk.brkoff)
	brk.brkoff += incr
	return prev, nil
}

// Release implement Extender{} interface.
func (brk *membrk) Release() {
	brk.slab, brk.base, brk.brkoff = nil, 0, 0
}

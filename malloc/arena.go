// Functions and methods are not thread safe.

package malloc

import "fmt"
import "unsafe"

import "github.com/bnclabs/gobrk/api"
import "github.com/bnclabs/golog"
import s "github.com/bnclabs/gosettings"

// Arena owns every byte ever obtained from its break. Callers only
// ever receive loaned payload pointers, never the headers preceding
// them.
type Arena struct {
	brk    Extender
	head   uintptr // first free node, zero when the list is empty
	cursor uintptr // next-fit roaming point, zero falls back to head

	// accounting
	heap      int64 // bytes obtained from the break, padding included
	allocated int64 // payload bytes loaned out to the application
	n_blocks  int64 // headers carved so far, live and free

	// configuration
	capacity  int64
	logprefix string
}

// NewArena create a new arena over its own break. Settings must
// carry the parameters described in Defaultsettings().
func NewArena(setts s.Settings) *Arena {
	arena := &Arena{capacity: setts.Int64("capacity")}
	extender := setts.String("extender")
	switch extender {
	case "mem":
		arena.brk = newmembrk(arena.capacity)
	case "os":
		arena.brk = &osbrk{}
	default:
		panicerr("invalid extender %q", extender)
	}
	arena.logprefix = fmt.Sprintf("[arena-%v]", extender)
	log.Infof("%v started with capacity %v ...\n", arena.logprefix, arena.capacity)
	return arena
}

//---- operations

// Alloc implement api.Mallocer{} interface.
func (arena *Arena) Alloc(n int64) unsafe.Pointer {
	if arena.brk == nil {
		panicerr("arena released")
	} else if n < 0 {
		panicerr("Alloc size %v is negative", n)
	}
	if addr, ok := arena.nextfit(n); ok {
		size := nodeat(addr).size
		if arena.split(addr, n) {
			arena.cursor = arena.head // the remainder we just pushed
			size = n
		}
		arena.allocated += size
		return stamp(addr, size)
	}
	return arena.extend(n)
}

// Allocz implement api.Mallocer{} interface.
func (arena *Arena) Allocz(count, elemsize int64) unsafe.Pointer {
	if count < 0 || elemsize < 0 {
		panicerr("Allocz negative argument (%v, %v)", count, elemsize)
	}
	total := count * elemsize
	if elemsize != 0 && total/elemsize != count { // overflow
		return nil
	}
	ptr := arena.Alloc(total)
	if ptr == nil {
		return nil
	}
	memset(ptr, hdrat(header(ptr)).size)
	return ptr
}

// Realloc implement api.Mallocer{} interface.
func (arena *Arena) Realloc(ptr unsafe.Pointer, n int64) unsafe.Pointer {
	if ptr == nil {
		return arena.Alloc(n)
	} else if n == 0 {
		arena.Free(ptr)
		return nil
	}
	hdr := arena.validate(ptr, "Realloc")
	if hdr.size >= n {
		return ptr // block is already big enough, avoid the churn
	}
	newptr := arena.Alloc(n)
	if newptr == nil {
		return nil // old block stays valid
	}
	memcpy(newptr, ptr, hdr.size)
	arena.Free(ptr)
	return newptr
}

// Free implement api.Mallocer{} interface.
func (arena *Arena) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	} else if arena.brk == nil {
		panicerr("arena released")
	}
	addr := header(ptr)
	if arena.reachable(addr) {
		log.Errorf("%v double free at %p\n", arena.logprefix, ptr)
		panic(api.ErrorDoubleFree)
	}
	hdr := arena.validate(ptr, "Free")
	arena.allocated -= hdr.size
	arena.push(addr, hdr.size)
	arena.coalesce(addr)
}

// Chunklen implement api.Mallocer{} interface.
func (arena *Arena) Chunklen(ptr unsafe.Pointer) int64 {
	return arena.validate(ptr, "Chunklen").size
}

// Release implement api.Mallocer{} interface.
func (arena *Arena) Release() {
	log.Infof("%v released\n", arena.logprefix)
	arena.brk.Release()
	arena.brk, arena.head, arena.cursor = nil, 0, 0
}

//---- statistics

// Info implement api.Mallocer{} interface.
func (arena *Arena) Info() (heap, alloc, overhead int64) {
	return arena.heap, arena.allocated, arena.n_blocks * Hdrsize
}

// Allocated payload bytes currently loaned out.
func (arena *Arena) Allocated() int64 {
	return arena.allocated
}

// Available bytes left before the break hits its capacity. Not
// meaningful for the "os" extender.
func (arena *Arena) Available() int64 {
	return arena.capacity - arena.heap
}

// Utilization ratio between application payload bytes and bytes
// obtained from the break.
func (arena *Arena) Utilization() float64 {
	if arena.heap == 0 {
		return 0
	}
	return float64(arena.allocated) / float64(arena.heap)
}

//---- local functions

// extend fall through to the break for a fresh block, aligning the
// break first. The free list is untouched on failure.
func (arena *Arena) extend(n int64) unsafe.Pointer {
	brkaddr, err := arena.brk.Sbrk(0)
	if err != nil {
		return nil
	}
	if pad := int64(alignedup(brkaddr, Alignment) - brkaddr); pad > 0 {
		if _, err := arena.brk.Sbrk(pad); err != nil {
			return nil
		}
		arena.heap += pad
	}
	addr, err := arena.brk.Sbrk(Hdrsize + n)
	if err != nil {
		return nil
	}
	arena.heap += Hdrsize + n
	arena.allocated += n
	arena.n_blocks++
	return stamp(addr, n)
}

// validate map ptr back to its header and verify the sentinel.
func (arena *Arena) validate(ptr unsafe.Pointer, op string) *allochdr {
	hdr := hdrat(header(ptr))
	if hdr.magic != Magic {
		log.Errorf("%v %v: corruption at %p\n", arena.logprefix, op, ptr)
		panic(api.ErrorCorruption)
	}
	return hdr
}

package malloc

import "fmt"
import "reflect"
import "testing"
import "unsafe"

import "github.com/bnclabs/gobrk/api"
import s "github.com/bnclabs/gosettings"

var _ = fmt.Sprintf("dummy")

func testsetts(capacity int64) s.Settings {
	setts := Defaultsettings()
	setts["capacity"] = capacity
	return setts
}

func testbytes(ptr unsafe.Pointer, ln int64) []byte {
	var b []byte
	sl := (*reflect.SliceHeader)(unsafe.Pointer(&b))
	sl.Data, sl.Len, sl.Cap = uintptr(ptr), int(ln), int(ln)
	return b
}

func TestNewArena(t *testing.T) {
	arena := NewArena(testsetts(1024 * 1024))
	if arena.head != 0 {
		t.Errorf("expected empty free list, got %x", arena.head)
	} else if heap, alloc, overhead := arena.Info(); heap != 0 {
		t.Errorf("expected %v, got %v", 0, heap)
	} else if alloc != 0 {
		t.Errorf("expected %v, got %v", 0, alloc)
	} else if overhead != 0 {
		t.Errorf("expected %v, got %v", 0, overhead)
	}
	arena.Release()

	// panic cases
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		NewArena(s.Settings{"capacity": int64(1024), "extender": "hooey"})
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		NewArena(testsetts(-1))
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		arena := NewArena(testsetts(1024))
		arena.Release()
		arena.Alloc(16)
	}()
}

func TestAllocFree(t *testing.T) {
	arena := NewArena(testsetts(1024 * 1024))
	defer arena.Release()

	ptr := arena.Alloc(128)
	if ptr == nil {
		t.Errorf("unexpected allocation failure")
	}
	if uintptr(ptr)%uintptr(Alignment) != 0 {
		t.Errorf("pointer %p is not %v byte aligned", ptr, Alignment)
	}
	heap, alloc, overhead := arena.Info()
	if alloc != 128 {
		t.Errorf("expected %v, got %v", 128, alloc)
	} else if overhead != Hdrsize {
		t.Errorf("expected %v, got %v", Hdrsize, overhead)
	} else if heap < 128+Hdrsize || heap > 128+Hdrsize+Alignment-1 {
		t.Errorf("unexpected heap %v", heap)
	}

	// a freed block must satisfy the same request without growing
	// the heap.
	arena.Free(ptr)
	if x := arena.Allocated(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}
	heap, _, _ = arena.Info()
	again := arena.Alloc(128)
	if again != ptr {
		t.Errorf("expected %p, got %p", ptr, again)
	}
	if x, _, _ := arena.Info(); x != heap {
		t.Errorf("expected %v, got %v", heap, x)
	}
}

func TestAlloczZerofill(t *testing.T) {
	arena := NewArena(testsetts(1024 * 1024))
	defer arena.Release()

	// dirty a block, free it, and get it back zeroed.
	ptr := arena.Alloc(128)
	block := testbytes(ptr, 128)
	for i := range block {
		block[i] = 0xff
	}
	arena.Free(ptr)

	zptr := arena.Allocz(4, 32)
	if zptr != ptr {
		t.Errorf("expected %p, got %p", ptr, zptr)
	}
	for i, x := range testbytes(zptr, 128) {
		if x != 0 {
			t.Fatalf("expected zero at %v, got %x", i, x)
		}
	}

	if x := arena.Chunklen(zptr); x != 128 {
		t.Errorf("expected %v, got %v", 128, x)
	}
}

func TestAlloczOverflow(t *testing.T) {
	arena := NewArena(testsetts(1024 * 1024))
	defer arena.Release()

	count, elemsize := int64(1<<62), int64(16)
	if ptr := arena.Allocz(count, elemsize); ptr != nil {
		t.Errorf("expected nil on overflow, got %p", ptr)
	}
	if _, alloc, _ := arena.Info(); alloc != 0 {
		t.Errorf("expected %v, got %v", 0, alloc)
	}

	if ptr := arena.Allocz(0, 16); ptr == nil {
		t.Errorf("unexpected failure for zero count")
	}
}

func TestRealloc(t *testing.T) {
	arena := NewArena(testsetts(1024 * 1024))
	defer arena.Release()

	// nil pointer behaves as Alloc.
	ptr := arena.Realloc(nil, 128)
	if ptr == nil {
		t.Errorf("unexpected allocation failure")
	}
	block := testbytes(ptr, 128)
	for i := range block {
		block[i] = byte(i)
	}

	// shrink is a no-op, same pointer, no heap growth.
	heap, _, _ := arena.Info()
	if x := arena.Realloc(ptr, 64); x != ptr {
		t.Errorf("expected %p, got %p", ptr, x)
	}
	if x := arena.Realloc(ptr, 128); x != ptr {
		t.Errorf("expected %p, got %p", ptr, x)
	}
	if x, _, _ := arena.Info(); x != heap {
		t.Errorf("expected %v, got %v", heap, x)
	}

	// growth preserves the payload prefix.
	newptr := arena.Realloc(ptr, 256)
	if newptr == nil {
		t.Errorf("unexpected allocation failure")
	} else if newptr == ptr {
		t.Errorf("expected a fresh block")
	}
	for i, x := range testbytes(newptr, 128) {
		if x != byte(i) {
			t.Fatalf("expected %x at %v, got %x", byte(i), i, x)
		}
	}

	// zero size behaves as Free.
	if x := arena.Realloc(newptr, 0); x != nil {
		t.Errorf("expected nil, got %p", x)
	}
	if x := arena.Allocated(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}
	// the old and the new block coalesce into one spanning node.
	if arena.head != header(ptr) {
		t.Errorf("expected %x, got %x", header(ptr), arena.head)
	} else if x := nodeat(arena.head).size; x != 128+Hdrsize+256 {
		t.Errorf("expected %v, got %v", 128+Hdrsize+256, x)
	}
}

func TestReallocFailure(t *testing.T) {
	arena := NewArena(testsetts(256))
	defer arena.Release()

	ptr := arena.Alloc(32)
	if ptr == nil {
		t.Errorf("unexpected allocation failure")
	}
	block := testbytes(ptr, 32)
	for i := range block {
		block[i] = byte(i)
	}

	// break exhausted, old block stays valid and untouched.
	if x := arena.Realloc(ptr, 1024); x != nil {
		t.Errorf("expected nil, got %p", x)
	}
	if x := arena.Chunklen(ptr); x != 32 {
		t.Errorf("expected %v, got %v", 32, x)
	}
	for i, x := range testbytes(ptr, 32) {
		if x != byte(i) {
			t.Fatalf("expected %x at %v, got %x", byte(i), i, x)
		}
	}
}

func TestExhaustion(t *testing.T) {
	arena := NewArena(testsetts(200))
	defer arena.Release()

	a, b := arena.Alloc(64), arena.Alloc(64)
	if a == nil || b == nil {
		t.Errorf("unexpected allocation failure")
	}
	if c := arena.Alloc(64); c != nil {
		t.Errorf("expected nil, got %p", c)
	}
	// the free list keeps the arena usable after exhaustion.
	arena.Free(a)
	if d := arena.Alloc(64); d != a {
		t.Errorf("expected %p, got %p", a, d)
	}
}

func TestCorruption(t *testing.T) {
	arena := NewArena(testsetts(1024 * 1024))
	defer arena.Release()

	ptr := arena.Alloc(64)
	hdrat(header(ptr)).magic = 0xdeadbeef // scribble past the payload

	func() {
		defer func() {
			if r := recover(); r != api.ErrorCorruption {
				t.Errorf("expected %v, got %v", api.ErrorCorruption, r)
			}
		}()
		arena.Free(ptr)
	}()
}

func TestDoubleFree(t *testing.T) {
	arena := NewArena(testsetts(1024 * 1024))
	defer arena.Release()

	ptr := arena.Alloc(64)
	arena.Free(ptr)

	func() {
		defer func() {
			if r := recover(); r != api.ErrorDoubleFree {
				t.Errorf("expected %v, got %v", api.ErrorDoubleFree, r)
			}
		}()
		arena.Free(ptr)
	}()
}

func TestUtilization(t *testing.T) {
	arena := NewArena(testsetts(1024 * 1024))
	defer arena.Release()

	if x := arena.Utilization(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}
	arena.Alloc(1024)
	if x := arena.Utilization(); x < 0.9 {
		t.Errorf("unexpected utilization %v", x)
	}
	if x := arena.Available(); x > 1024*1024-1024-Hdrsize {
		t.Errorf("unexpected available %v", x)
	}
}

// Free-list surgery for Arena. Functions and methods are not thread
// safe.

package malloc

// push park the block at addr, of `size` payload bytes, at the head
// of the free list.
func (arena *Arena) push(addr uintptr, size int64) {
	node := nodeat(addr)
	node.size, node.next = size, arena.head
	arena.head = addr
}

// reachable report whether addr is linked into the free list. Blocks
// in the list belong to the arena, not the application, so a Free on
// a reachable address is a double free.
func (arena *Arena) reachable(addr uintptr) bool {
	for n := arena.head; n != 0; n = nodeat(n).next {
		if n == addr {
			return true
		}
	}
	return false
}

// unlink splice addr out of the free list, patching the head and the
// next-fit cursor when either referred to it.
func (arena *Arena) unlink(addr uintptr) {
	node := nodeat(addr)
	if arena.head == addr {
		arena.head = node.next
	} else {
		for n := arena.head; n != 0; n = nodeat(n).next {
			if nodeat(n).next == addr {
				nodeat(n).next = node.next
				break
			}
		}
	}
	if arena.cursor == addr {
		arena.cursor = node.next // zero falls back to the head
	}
	node.next = 0
}

// nextfit walk the free list circularly, starting at the cursor, and
// unlink the first node whose payload can hold `size` bytes. Every
// node is examined at most once. False means the caller must extend
// the break.
func (arena *Arena) nextfit(size int64) (uintptr, bool) {
	if arena.head == 0 {
		return 0, false
	}
	if arena.cursor == 0 {
		arena.cursor = arena.head
	}
	if addr, ok := arena.scan(arena.cursor, 0, size); ok {
		return addr, true
	}
	return arena.scan(arena.head, arena.cursor, size)
}

// scan walk nodes [from, until) and unlink the first fit.
func (arena *Arena) scan(from, until uintptr, size int64) (uintptr, bool) {
	for addr := from; addr != 0 && addr != until; addr = nodeat(addr).next {
		if nodeat(addr).size >= size {
			arena.unlink(addr)
			return addr, true
		}
	}
	return 0, false
}

// split carve `size` payload bytes out of the unlinked node at addr.
// The remainder becomes a fresh free node pushed onto the list. False
// when the remainder could not host a header of its own, in which
// case the whole node must be handed out oversized, a sliver without
// a header would corrupt later scans.
func (arena *Arena) split(addr uintptr, size int64) bool {
	total := nodeat(addr).size
	if total-size-Hdrsize < Hdrsize {
		return false
	}
	tail := addr + uintptr(Hdrsize) + uintptr(size)
	arena.push(tail, total-size-Hdrsize)
	arena.n_blocks++
	return true
}

// coalesce fuse the free node at addr with its physically adjacent
// neighbours, in the free list. Adjacency is decided purely by
// address arithmetic, at most one predecessor and one successor can
// touch addr, so a single pass restores the invariant that no two
// adjacent free nodes survive.
func (arena *Arena) coalesce(addr uintptr) uintptr {
	if prev := arena.findprev(addr); prev != 0 {
		arena.unlink(addr)
		nodeat(prev).size += Hdrsize + nodeat(addr).size
		arena.n_blocks--
		addr = prev
	}
	if next := arena.findnext(addr); next != 0 {
		arena.unlink(next)
		nodeat(addr).size += Hdrsize + nodeat(next).size
		arena.n_blocks--
	}
	return addr
}

// findprev free node whose extent ends exactly at addr.
func (arena *Arena) findprev(addr uintptr) uintptr {
	for n := arena.head; n != 0; n = nodeat(n).next {
		if n != addr && nodeend(n) == addr {
			return n
		}
	}
	return 0
}

// findnext free node that begins exactly where addr's extent ends.
func (arena *Arena) findnext(addr uintptr) uintptr {
	end := nodeend(addr)
	for n := arena.head; n != 0; n = nodeat(n).next {
		if n == end {
			return n
		}
	}
	return 0
}

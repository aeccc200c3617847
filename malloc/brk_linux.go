//go:build linux
// +build linux

package malloc

import "golang.org/x/sys/unix"

import "github.com/bnclabs/gobrk/api"

// osbrk extends the real program break with brk(2). The kernel hands
// back the current break when a request cannot be honoured, there is
// no errno to inspect.
type osbrk struct{}

// Sbrk implement Extender{} interface.
func (brk *osbrk) Sbrk(incr int64) (uintptr, error) {
	cur, _, _ := unix.Syscall(unix.SYS_BRK, 0, 0, 0)
	if incr == 0 {
		return cur, nil
	} else if incr < 0 {
		panicerr("osbrk cannot shrink (%v)", incr)
	}
	want := cur + uintptr(incr)
	if got, _, _ := unix.Syscall(unix.SYS_BRK, want, 0, 0); got < want {
		return 0, api.ErrorOutofMemory
	}
	return cur, nil
}

// Release implement Extender{} interface. The program break is never
// lowered.
func (brk *osbrk) Release() {
}

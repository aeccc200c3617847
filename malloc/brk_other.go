//go:build !linux
// +build !linux

package malloc

// osbrk is available only on linux, use the "mem" extender elsewhere.
type osbrk struct{}

// Sbrk implement Extender{} interface.
func (brk *osbrk) Sbrk(incr int64) (uintptr, error) {
	panicerr("osbrk not supported on this platform")
	return 0, nil
}

// Release implement Extender{} interface.
func (brk *osbrk) Release() {
}

package malloc

import "fmt"
import "reflect"
import "unsafe"

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}

// alignedup round addr up to the next multiple of align, which must
// be a power of two.
func alignedup(addr uintptr, align int64) uintptr {
	mask := uintptr(align - 1)
	return (addr + mask) &^ mask
}

// memcpy copy `ln` bytes from `src` to `dst`. Regions must not
// overlap.
func memcpy(dst, src unsafe.Pointer, ln int64) {
	var d, s []byte
	dsl := (*reflect.SliceHeader)(unsafe.Pointer(&d))
	dsl.Data, dsl.Len, dsl.Cap = uintptr(dst), int(ln), int(ln)
	ssl := (*reflect.SliceHeader)(unsafe.Pointer(&s))
	ssl.Data, ssl.Len, ssl.Cap = uintptr(src), int(ln), int(ln)
	copy(d, s)
}

var zeroblk = make([]byte, 1024)

// memset fill `ln` bytes at `dst` with zeros.
func memset(dst unsafe.Pointer, ln int64) {
	var d []byte
	initsz := len(zeroblk)
	sl := (*reflect.SliceHeader)(unsafe.Pointer(&d))
	sl.Data, sl.Len, sl.Cap = uintptr(dst), initsz, initsz
	for i := int64(0); i < ln/int64(initsz); i++ {
		copy(d, zeroblk)
		sl.Data += uintptr(initsz)
	}
	if n := int(ln % int64(initsz)); n > 0 {
		sl.Len, sl.Cap = n, n
		copy(d, zeroblk)
	}
}

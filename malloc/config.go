package malloc

import s "github.com/bnclabs/gosettings"

// Alignment of every header address and payload address handed out
// by the arena. Payloads may hold any scalar type, hence 16.
const Alignment = int64(16)

// Maxheapsize maximum size of the simulated break. Can be used as
// upper limit for the `capacity` setting.
const Maxheapsize = int64(1024 * 1024 * 1024 * 1024) // 1TB

// Malloc configurable parameters and default settings.
//
// "capacity" (int64, default: 1024*1024*1024)
//		Upper bound, in bytes, on the simulated break. Ignored by
//		the "os" extender, where the kernel decides.
//
// "extender" (string, default: "mem")
//		Break primitive to allocate address space from, can be
//		"mem" for an in-process break or "os" for brk(2).
func Defaultsettings() s.Settings {
	return s.Settings{
		"capacity": int64(1024 * 1024 * 1024),
		"extender": "mem",
	}
}

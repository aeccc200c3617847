// Exercise an arena with a random alloc/realloc/free workload and
// report the accounting at the end.

package main

import "flag"
import "fmt"
import "math/rand"
import "unsafe"

import "github.com/bnclabs/gobrk/api"
import "github.com/bnclabs/gobrk/malloc"
import "github.com/bnclabs/golog"

var options struct {
	capacity int
	maxblock int
	ops      int
	seed     int
	extender string
}

func argParse() {
	flag.IntVar(&options.capacity, "capacity", 64*1024*1024,
		"break capacity in bytes")
	flag.IntVar(&options.maxblock, "maxblock", 4096,
		"largest block size to exercise")
	flag.IntVar(&options.ops, "ops", 1000000,
		"number of operations")
	flag.IntVar(&options.seed, "seed", 101,
		"rng seed")
	flag.StringVar(&options.extender, "extender", "mem",
		"break primitive, mem or os")
	flag.Parse()
}

func main() {
	argParse()

	setts := malloc.Defaultsettings()
	setts["capacity"] = int64(options.capacity)
	setts["extender"] = options.extender
	var arena api.Mallocer = malloc.NewArena(setts)

	rnd := rand.New(rand.NewSource(int64(options.seed)))
	live := make([]unsafe.Pointer, 0, 1024)
	for i := 0; i < options.ops; i++ {
		switch {
		case len(live) == 0 || rnd.Intn(3) > 0:
			size := int64(rnd.Intn(options.maxblock)) + 1
			ptr := arena.Alloc(size)
			if ptr == nil {
				log.Fatalf("break exhausted after %v ops\n", i)
			}
			live = append(live, ptr)

		case rnd.Intn(2) == 0:
			off := rnd.Intn(len(live))
			size := int64(rnd.Intn(options.maxblock)) + 1
			if ptr := arena.Realloc(live[off], size); ptr != nil {
				live[off] = ptr
			}

		default:
			off := rnd.Intn(len(live))
			arena.Free(live[off])
			live[off] = live[len(live)-1]
			live = live[:len(live)-1]
		}
	}

	heap, alloc, overhead := arena.Info()
	fmt.Printf("ops       : %v\n", options.ops)
	fmt.Printf("live      : %v\n", len(live))
	fmt.Printf("heap      : %v\n", heap)
	fmt.Printf("alloc     : %v\n", alloc)
	fmt.Printf("overhead  : %v\n", overhead)
	arena.Release()
}

package mem

import (
	"sync"
	"unsafe"
)

// HeapAllocator is the default backend. It bridges the contract to the Go
// heap: each region is carved out of a fresh slice, padded so the returned
// address satisfies the requested alignment.
//
// The handle carries no state; liveness is tracked in a single package
// registry keyed by region address, which pins the backing slice against
// the collector until Free. Safe for concurrent use.
type HeapAllocator struct {
	BaseAllocator
}

// DefaultAllocator can be used anywhere an Allocator is required.
var DefaultAllocator Allocator = HeapAllocator{}

// heapLive pins the backing slice of every live heap region. Shared by
// all HeapAllocator handles: the pool is global, the handles are not.
var heapLive = struct {
	sync.Mutex
	m map[unsafe.Pointer][]byte
}{m: make(map[unsafe.Pointer][]byte)}

// Allocate implements Allocator. Fresh Go heap memory is already zeroed,
// so FlagZero needs no extra work here.
func (HeapAllocator) Allocate(layout Layout, flags Flags) (Region, error) {
	debugAllocation(layout, flags)
	if err := checkLayout(layout); err != nil {
		return Region{}, err
	}
	if layout.Size+layout.Align < layout.Size {
		return Region{}, ErrOutOfMemory
	}

	// Over-allocate by the alignment and shift to the first aligned byte.
	buf := make([]byte, layout.Size+layout.Align)
	base := uintptr(unsafe.Pointer(&buf[0]))
	shift := alignUp(base, layout.Align) - base
	p := unsafe.Pointer(&buf[shift])

	heapLive.Lock()
	heapLive.m[p] = buf
	heapLive.Unlock()
	return NewRegion(p, layout.Size), nil
}

// Reallocate implements Allocator via allocate-copy-free; the Go heap has
// no in-place resize.
func (a HeapAllocator) Reallocate(r Region, oldLayout, newLayout Layout, flags Flags) (Region, error) {
	return reallocFallback(a, r, oldLayout, newLayout, flags)
}

// Free implements Allocator. Dropping the registry entry unpins the
// backing slice for the collector.
func (HeapAllocator) Free(r Region, layout Layout) {
	heapLive.Lock()
	delete(heapLive.m, r.Addr())
	heapLive.Unlock()
}

//go:build unix

package mem

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MappedAllocator obtains whole anonymous mappings from the OS instead of
// going through the Go heap. Requests are rounded up to the page size, so
// it suits large, long-lived regions; small allocations waste most of a
// page. Mapped pages arrive zeroed from the kernel, which satisfies
// FlagZero for free.
//
// Alignments up to the page size are satisfied by the mapping base;
// anything larger fails with ErrInvalidAlignment. Safe for concurrent
// use. Handles carry no state of their own.
type MappedAllocator struct {
	BaseAllocator
}

var mappedLive = struct {
	sync.Mutex
	m map[unsafe.Pointer][]byte
}{m: make(map[unsafe.Pointer][]byte)}

// Allocate implements Allocator.
func (MappedAllocator) Allocate(layout Layout, flags Flags) (Region, error) {
	debugAllocation(layout, flags)
	if err := checkLayout(layout); err != nil {
		return Region{}, err
	}
	page := uintptr(unix.Getpagesize())
	if layout.Align > page {
		return Region{}, ErrInvalidAlignment
	}
	length := alignUp(layout.Size, page)
	if length < layout.Size {
		return Region{}, ErrOutOfMemory
	}

	data, err := unix.Mmap(-1, 0, int(length),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		// Whatever the kernel's complaint, to the caller the pool is
		// exhausted.
		return Region{}, ErrOutOfMemory
	}
	p := unsafe.Pointer(&data[0])

	mappedLive.Lock()
	mappedLive.m[p] = data
	mappedLive.Unlock()
	return NewRegion(p, layout.Size), nil
}

// Reallocate implements Allocator. A resize that stays within the pages
// already mapped is done in place; growth beyond them moves the region.
func (a MappedAllocator) Reallocate(r Region, oldLayout, newLayout Layout, flags Flags) (Region, error) {
	if err := checkLayout(newLayout); err != nil {
		return Region{}, err
	}
	page := uintptr(unix.Getpagesize())
	if newLayout.Align > page {
		return Region{}, ErrInvalidAlignment
	}
	if alignUp(newLayout.Size, page) == alignUp(oldLayout.Size, page) {
		// A moving resize hands out fresh zero pages past the copied
		// prefix; an in-place grow must erase the stale tail to match.
		if flags.Contains(FlagZero) && newLayout.Size > oldLayout.Size {
			ZeroMemory(unsafe.Add(r.Addr(), oldLayout.Size), newLayout.Size-oldLayout.Size)
		}
		return NewRegion(r.Addr(), newLayout.Size), nil
	}
	return reallocFallback(a, r, oldLayout, newLayout, flags)
}

// Free implements Allocator, returning the whole mapping to the kernel.
func (MappedAllocator) Free(r Region, layout Layout) {
	mappedLive.Lock()
	data, ok := mappedLive.m[r.Addr()]
	delete(mappedLive.m, r.Addr())
	mappedLive.Unlock()
	if !ok {
		return
	}
	// Ignore EINVAL the way a double-unmap is ignored elsewhere; the
	// registry already guarantees single release.
	_ = unix.Munmap(data)
}

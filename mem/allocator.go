package mem

import "unsafe"

// DefaultCapacity is the byte capacity containers reserve when they first
// grow from empty and the caller expressed no preference.
const DefaultCapacity = 4096

// Allocator is the capability contract every backend satisfies.
//
// Implementations:
//   - HeapAllocator: default backend over the Go heap
//   - MappedAllocator: whole anonymous OS mappings (Unix), heap fallback
//   - TrackingAllocator: wrapper that maintains accurate Stats
//   - memtest.Allocator: instrumented backend for tests
//
// The canonical implementation holds no per-handle state; the only true
// state, the memory itself, belongs to the global backend. That keeps a
// backend value free to copy and lets call sites that name a concrete
// type compile to direct calls.
type Allocator interface {
	// Allocate returns a region whose address satisfies layout.Align and
	// whose size is at least layout.Size. The caller owns the region
	// exclusively until it is passed to Free or Reallocate on this same
	// backend. Fails with ErrZeroSize, ErrInvalidAlignment or
	// ErrOutOfMemory; no other failure is representable. With FlagZero
	// every byte of the returned region reads as zero.
	Allocate(layout Layout, flags Flags) (Region, error)

	// Reallocate resizes a region to newLayout, moving it if the backend
	// cannot resize in place. Logically allocate-new, copy min(old,new)
	// bytes, free-old. On failure the original region is untouched and
	// still owned by the caller.
	//
	// Precondition: r came from a prior Allocate/Reallocate on this
	// backend with a layout compatible with oldLayout. Not checked.
	Reallocate(r Region, oldLayout, newLayout Layout, flags Flags) (Region, error)

	// Free releases a region back to the backend.
	//
	// Precondition: r came from a prior Allocate/Reallocate on this
	// backend with a layout compatible with the one supplied, and has not
	// been freed already. Violations are undefined behavior, not errors.
	Free(r Region, layout Layout)

	// CanAllocate reports whether the layout is well-formed enough to
	// attempt: non-zero size, power-of-two alignment. A true result does
	// not promise the allocation will succeed.
	CanAllocate(layout Layout) bool

	// Stats returns a snapshot of the backend's usage counters. A backend
	// that tracks nothing returns the zero Stats; no operation depends on
	// stats being accurate.
	Stats() Stats
}

// CanAllocate is the canonical pre-flight predicate backends inherit
// through BaseAllocator.
func CanAllocate(layout Layout) bool {
	return layout.Size > 0 && isPowerOfTwo(layout.Align)
}

// ZeroMemory writes size zero bytes starting at p.
//
// Precondition: size does not exceed the allocated capacity behind p. Not
// checked; exceeding it corrupts adjacent memory.
func ZeroMemory(p unsafe.Pointer, size uintptr) {
	if size == 0 {
		return
	}
	clear(unsafe.Slice((*byte)(p), size))
}

// Dangling returns a well-aligned, non-nil address for the layout that
// must never be dereferenced. Containers use it to represent a live but
// empty state without allocating.
func Dangling(layout Layout) unsafe.Pointer {
	// The alignment itself is a valid aligned address and never points at
	// an allocation.
	return unsafe.Pointer(uintptr(layout.Align))
}

// BaseAllocator supplies the default CanAllocate and Stats so a backend
// only writes the true primitives. Embed it and override nothing else
// unless the backend genuinely tracks usage.
type BaseAllocator struct{}

// CanAllocate implements the default pre-flight check.
func (BaseAllocator) CanAllocate(layout Layout) bool {
	return CanAllocate(layout)
}

// Stats returns the zero snapshot; an untracked backend is a valid, if
// unobservable, backend.
func (BaseAllocator) Stats() Stats {
	return Stats{}
}

// reallocFallback implements Reallocate as allocate-copy-free for backends
// with no in-place path. The old region survives any failure.
func reallocFallback(a Allocator, r Region, oldLayout, newLayout Layout, flags Flags) (Region, error) {
	nr, err := a.Allocate(newLayout, flags)
	if err != nil {
		return Region{}, err
	}
	n := oldLayout.Size
	if newLayout.Size < n {
		n = newLayout.Size
	}
	copy(nr.Bytes()[:n], r.Bytes()[:n])
	a.Free(r, oldLayout)
	return nr, nil
}

package mem

import "unsafe"

// Region is an owned block of memory handed out by a successful Allocate
// or Reallocate. The address is never nil for a live region; the size is
// the usable byte count, at least the Layout size that requested it.
//
// A Region is a value: copying it copies the handle, not the memory. After
// the region is passed to Free, every copy of the handle is dead and must
// not be used again.
type Region struct {
	ptr  unsafe.Pointer
	size uintptr
}

// NewRegion builds a Region handle from a raw address and usable size.
// Intended for backend implementations; callers normally only receive
// regions from Allocate.
func NewRegion(p unsafe.Pointer, size uintptr) Region {
	return Region{ptr: p, size: size}
}

// Addr returns the region's starting address.
func (r Region) Addr() unsafe.Pointer {
	return r.ptr
}

// Size returns the region's usable size in bytes.
func (r Region) Size() uintptr {
	return r.size
}

// Bytes returns the region's memory as a byte slice. The slice aliases
// the region and is valid only while the region is live.
func (r Region) Bytes() []byte {
	if r.ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(r.ptr), r.size)
}

// IsZero reports whether r is the zero handle, which no successful
// allocation ever returns.
func (r Region) IsZero() bool {
	return r.ptr == nil
}

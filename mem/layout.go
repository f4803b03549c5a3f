package mem

import "unsafe"

// Layout describes a requested memory region: how many bytes, and at what
// alignment the first byte must sit. Align must be a power of two.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// NewLayout builds a Layout and validates it. A zero size yields
// ErrZeroSize and a non-power-of-two alignment yields ErrInvalidAlignment,
// the same errors Allocate would return for the equivalent request.
func NewLayout(size, align uintptr) (Layout, error) {
	l := Layout{Size: size, Align: align}
	if err := checkLayout(l); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// LayoutOf returns the Layout of a single value of type T.
func LayoutOf[T any]() Layout {
	var v T
	return Layout{Size: unsafe.Sizeof(v), Align: unsafe.Alignof(v)}
}

// LayoutSlice returns the Layout of a contiguous run of n values of type T.
// n must be non-negative.
func LayoutSlice[T any](n int) Layout {
	var v T
	return Layout{Size: unsafe.Sizeof(v) * uintptr(n), Align: unsafe.Alignof(v)}
}

// Valid reports whether the alignment is a power of two. It says nothing
// about the size; most operations additionally reject Size == 0.
func (l Layout) Valid() bool {
	return isPowerOfTwo(l.Align)
}

// Extend returns the layout of this layout followed by a value of layout
// next, plus the byte offset at which next begins. Padding is inserted so
// next starts at its own alignment; the combined alignment is the larger
// of the two.
func (l Layout) Extend(next Layout) (Layout, uintptr) {
	off := alignUp(l.Size, next.Align)
	align := l.Align
	if next.Align > align {
		align = next.Align
	}
	return Layout{Size: off + next.Size, Align: align}, off
}

// PadToAlign returns the layout rounded up so its size is a multiple of
// its alignment, the layout an array element of this type would occupy.
func (l Layout) PadToAlign() Layout {
	return Layout{Size: alignUp(l.Size, l.Align), Align: l.Align}
}

func isPowerOfTwo(v uintptr) bool {
	return v != 0 && v&(v-1) == 0
}

// alignUp rounds v up to the next multiple of align. align must be a
// power of two.
func alignUp(v, align uintptr) uintptr {
	return (v + align - 1) &^ (align - 1)
}

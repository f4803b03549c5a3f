// Package box implements a single-value owning container over the
// mem.Allocator contract, the smallest possible consumer of it.
//
// Value types containing Go pointers belong on the heap backend only; an
// off-heap backend hides them from the collector.
package box

import (
	"github.com/joshuapare/memkit/mem"
)

// Box owns one value of T in a region from an Allocator. Zero-size types
// occupy no memory; the Box then holds only the dangling sentinel and
// Free is a no-op. Not safe for concurrent use.
type Box[T any] struct {
	alloc mem.Allocator
	r     mem.Region
	live  bool
}

// New allocates room for one T, stores v there and returns the box.
func New[T any](a mem.Allocator, v T, flags mem.Flags) (*Box[T], error) {
	layout := mem.LayoutOf[T]()
	b := &Box[T]{alloc: a, live: true}
	if layout.Size == 0 {
		b.r = mem.NewRegion(mem.Dangling(layout), 0)
		return b, nil
	}
	r, err := a.Allocate(layout, flags)
	if err != nil {
		return nil, err
	}
	*(*T)(r.Addr()) = v
	b.r = r
	return b, nil
}

// Get returns a pointer to the boxed value. Panics after Free or Into.
func (b *Box[T]) Get() *T {
	if !b.live {
		panic("box: use after free")
	}
	return (*T)(b.r.Addr())
}

// Into moves the value out and frees the box.
func (b *Box[T]) Into() T {
	v := *b.Get()
	b.Free()
	return v
}

// Free releases the region. Safe to call more than once; only the first
// call reaches the allocator.
func (b *Box[T]) Free() {
	if !b.live {
		return
	}
	b.live = false
	layout := mem.LayoutOf[T]()
	if layout.Size > 0 {
		b.alloc.Free(b.r, layout)
	}
	b.r = mem.Region{}
}

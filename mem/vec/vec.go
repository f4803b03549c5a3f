// Package vec implements a growable array that owns its storage through
// the mem.Allocator contract. It is the canonical owning-container
// consumer: every byte it holds was obtained from its allocator and goes
// back to the same allocator, never to the Go runtime directly.
//
// Element types containing Go pointers belong on the heap backend only;
// an off-heap backend hides them from the collector.
package vec

import (
	"unsafe"

	"github.com/joshuapare/memkit/mem"
)

// Vec is a growable array of T backed by a single region from an
// Allocator. The zero length/capacity state holds no region at all; the
// element pointer is a dangling, well-aligned address that is never
// dereferenced.
//
// A failed growth surfaces the allocator's typed error from Push or
// Reserve and leaves the vector unchanged. Not safe for concurrent use.
type Vec[T any] struct {
	alloc mem.Allocator
	flags mem.Flags
	r     mem.Region
	ptr   unsafe.Pointer
	len   int
	cap   int
}

// New returns an empty vector allocating from a with no request
// modifiers. No memory is allocated until the first Push or Reserve.
func New[T any](a mem.Allocator) *Vec[T] {
	return NewWithFlags[T](a, 0)
}

// NewWithFlags is New with modifiers applied to every allocation the
// vector makes.
func NewWithFlags[T any](a mem.Allocator, flags mem.Flags) *Vec[T] {
	return &Vec[T]{
		alloc: a,
		flags: flags,
		ptr:   mem.Dangling(elemLayout[T]()),
	}
}

// WithCapacity returns an empty vector with room for n elements already
// reserved.
func WithCapacity[T any](a mem.Allocator, n int) (*Vec[T], error) {
	v := New[T](a)
	if err := v.Reserve(n); err != nil {
		return nil, err
	}
	return v, nil
}

// elemLayout is the array stride layout of T: size padded to alignment.
func elemLayout[T any]() mem.Layout {
	return mem.LayoutOf[T]().PadToAlign()
}

const maxInt = int(^uint(0) >> 1)

// Len returns the number of elements.
func (v *Vec[T]) Len() int { return v.len }

// Cap returns the number of elements the current region can hold.
func (v *Vec[T]) Cap() int { return v.cap }

// Push appends x, growing the backing region if needed. On allocation
// failure the vector is unchanged and the error is one of the mem
// sentinels.
func (v *Vec[T]) Push(x T) error {
	if err := v.Reserve(1); err != nil {
		return err
	}
	*v.at(v.len) = x
	v.len++
	return nil
}

// Pop removes and returns the last element. The second result is false on
// an empty vector.
func (v *Vec[T]) Pop() (T, bool) {
	var zero T
	if v.len == 0 {
		return zero, false
	}
	v.len--
	x := *v.at(v.len)
	*v.at(v.len) = zero
	return x, true
}

// At returns a pointer to element i. Panics if i is out of range.
func (v *Vec[T]) At(i int) *T {
	if i < 0 || i >= v.len {
		panic("vec: index out of range")
	}
	return v.at(i)
}

// at skips the bounds check for internal callers that already hold one.
func (v *Vec[T]) at(i int) *T {
	stride := elemLayout[T]().Size
	return (*T)(unsafe.Add(v.ptr, uintptr(i)*stride))
}

// Slice returns the elements as a Go slice aliasing the vector's region.
// The slice is invalidated by any growth, Truncate past its length, or
// Free.
func (v *Vec[T]) Slice() []T {
	if v.len == 0 {
		return nil
	}
	return unsafe.Slice((*T)(v.ptr), v.len)
}

// Truncate drops elements past n. It never shrinks the region; capacity
// is retained for reuse.
func (v *Vec[T]) Truncate(n int) {
	if n < 0 || n >= v.len {
		return
	}
	var zero T
	for i := n; i < v.len; i++ {
		*v.at(i) = zero
	}
	v.len = n
}

// Reserve ensures room for at least additional more elements, growing by
// at least doubling so a run of pushes costs amortized constant
// reallocations. Zero-size element types never allocate.
func (v *Vec[T]) Reserve(additional int) error {
	if additional <= 0 {
		return nil
	}
	if additional > maxInt-v.len {
		return mem.ErrOutOfMemory
	}
	if v.len+additional <= v.cap {
		return nil
	}
	stride := elemLayout[T]().Size
	if stride == 0 {
		v.cap = int(^uint(0) >> 1)
		return nil
	}

	need := v.len + additional
	newCap := v.cap * 2
	if newCap < need {
		newCap = need
	}
	if floor := int(mem.DefaultCapacity / stride); v.cap == 0 && newCap < floor {
		newCap = floor
	}
	if uintptr(newCap) > (^uintptr(0))/stride {
		return mem.ErrOutOfMemory
	}

	newLayout := mem.LayoutSlice[T](newCap)
	var (
		r   mem.Region
		err error
	)
	if v.cap == 0 {
		r, err = v.alloc.Allocate(newLayout, v.flags)
	} else {
		r, err = v.alloc.Reallocate(v.r, mem.LayoutSlice[T](v.cap), newLayout, v.flags)
	}
	if err != nil {
		return err
	}
	v.r = r
	v.ptr = r.Addr()
	v.cap = newCap
	return nil
}

// Free releases the backing region and resets the vector to the empty
// state. The vector remains usable; the next Push allocates afresh.
func (v *Vec[T]) Free() {
	if v.cap > 0 && elemLayout[T]().Size > 0 {
		v.alloc.Free(v.r, mem.LayoutSlice[T](v.cap))
	}
	v.r = mem.Region{}
	v.ptr = mem.Dangling(elemLayout[T]())
	v.len = 0
	v.cap = 0
}

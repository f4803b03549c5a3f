// Package memtest provides an instrumented Allocator for tests: it
// records every request, enforces the preconditions production backends
// deliberately skip, and can inject failures on demand.
package memtest

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/joshuapare/memkit/mem"
)

// Call records one allocation request as the backend saw it.
type Call struct {
	Layout mem.Layout
	Flags  mem.Flags
}

// TestingT is the subset of *testing.T the leak assertion needs.
type TestingT interface {
	Errorf(format string, args ...any)
	Helper()
}

// Allocator is a mutex-guarded test backend over the Go heap. Unlike the
// production backends it checks Free preconditions (unknown region,
// double free, layout mismatch) and panics on violation, so a broken
// caller fails loudly in tests instead of corrupting memory in production.
type Allocator struct {
	mu    sync.Mutex
	calls []Call
	live  map[unsafe.Pointer]mem.Layout

	failAfter int   // fail every request once this many have succeeded; -1 = never
	failWith  error // error injected by SetFailAfter
}

var _ mem.Allocator = (*Allocator)(nil)

// New returns an empty test allocator that never injects failures.
func New() *Allocator {
	return &Allocator{
		live:      make(map[unsafe.Pointer]mem.Layout),
		failAfter: -1,
	}
}

// SetFailAfter makes every allocation past the next n fail with err.
// Pass n = 0 to fail immediately. err defaults to mem.ErrOutOfMemory.
func (a *Allocator) SetFailAfter(n int, err error) {
	if err == nil {
		err = mem.ErrOutOfMemory
	}
	a.mu.Lock()
	a.failAfter = n
	a.failWith = err
	a.mu.Unlock()
}

// Calls returns a copy of every allocation request seen so far, in order.
func (a *Allocator) Calls() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Call, len(a.calls))
	copy(out, a.calls)
	return out
}

// Live returns the number of regions allocated and not yet freed.
func (a *Allocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// AssertNoLeaks fails the test if any region is still live.
func (a *Allocator) AssertNoLeaks(t TestingT) {
	t.Helper()
	a.mu.Lock()
	defer a.mu.Unlock()
	if n := len(a.live); n > 0 {
		t.Errorf("memtest: %d region(s) still live", n)
	}
}

// Allocate implements mem.Allocator.
func (a *Allocator) Allocate(layout mem.Layout, flags mem.Flags) (mem.Region, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, Call{Layout: layout, Flags: flags})

	if layout.Size == 0 {
		return mem.Region{}, mem.ErrZeroSize
	}
	if !layout.Valid() {
		return mem.Region{}, mem.ErrInvalidAlignment
	}
	if a.failAfter == 0 {
		return mem.Region{}, a.failWith
	}
	if a.failAfter > 0 {
		a.failAfter--
	}

	buf := make([]byte, layout.Size+layout.Align)
	base := uintptr(unsafe.Pointer(&buf[0]))
	shift := (layout.Align - base%layout.Align) % layout.Align
	p := unsafe.Pointer(&buf[shift])

	a.live[p] = layout
	return mem.NewRegion(p, layout.Size), nil
}

// Reallocate implements mem.Allocator as allocate-copy-free so the
// injected-failure path leaves the old region intact, mirroring the
// contract.
func (a *Allocator) Reallocate(r mem.Region, oldLayout, newLayout mem.Layout, flags mem.Flags) (mem.Region, error) {
	nr, err := a.Allocate(newLayout, flags)
	if err != nil {
		return mem.Region{}, err
	}
	n := oldLayout.Size
	if newLayout.Size < n {
		n = newLayout.Size
	}
	copy(nr.Bytes()[:n], r.Bytes()[:n])
	a.Free(r, oldLayout)
	return nr, nil
}

// Free implements mem.Allocator, with the checks production backends
// omit.
func (a *Allocator) Free(r mem.Region, layout mem.Layout) {
	a.mu.Lock()
	defer a.mu.Unlock()
	got, ok := a.live[r.Addr()]
	if !ok {
		panic(fmt.Sprintf("memtest: free of unknown or already-freed region %p", r.Addr()))
	}
	if got != layout {
		panic(fmt.Sprintf("memtest: free layout %+v does not match allocation layout %+v", layout, got))
	}
	delete(a.live, r.Addr())
}

// CanAllocate implements mem.Allocator.
func (a *Allocator) CanAllocate(layout mem.Layout) bool {
	return mem.CanAllocate(layout)
}

// Stats implements mem.Allocator from the live set. Only the
// instantaneous fields are filled in; tests that need full counters wrap
// this backend in mem.NewTracking.
func (a *Allocator) Stats() mem.Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	var current uintptr
	for _, l := range a.live {
		current += l.Size
	}
	return mem.Stats{CurrentUsage: current, PeakUsage: current}
}

package mem

// TrackingAllocator wraps a backend and maintains accurate Stats while
// delegating every allocation decision to it. Counter updates are atomic,
// so the wrapper is safe for concurrent use whenever the wrapped backend
// is. Diagnostic only: tracking never changes an outcome.
type TrackingAllocator struct {
	inner Allocator
	stats statsCounter
}

// NewTracking wraps inner with usage tracking.
func NewTracking(inner Allocator) *TrackingAllocator {
	return &TrackingAllocator{inner: inner}
}

// Unwrap returns the wrapped backend.
func (t *TrackingAllocator) Unwrap() Allocator {
	return t.inner
}

// Allocate implements Allocator. Only successful allocations count.
func (t *TrackingAllocator) Allocate(layout Layout, flags Flags) (Region, error) {
	r, err := t.inner.Allocate(layout, flags)
	if err != nil {
		return Region{}, err
	}
	t.stats.recordAlloc(layout.Size)
	return r, nil
}

// Reallocate implements Allocator, counted as a free of the old layout
// and an allocation of the new one.
func (t *TrackingAllocator) Reallocate(r Region, oldLayout, newLayout Layout, flags Flags) (Region, error) {
	nr, err := t.inner.Reallocate(r, oldLayout, newLayout, flags)
	if err != nil {
		return Region{}, err
	}
	t.stats.recordAlloc(newLayout.Size)
	t.stats.recordFree(oldLayout.Size)
	return nr, nil
}

// Free implements Allocator.
func (t *TrackingAllocator) Free(r Region, layout Layout) {
	t.inner.Free(r, layout)
	t.stats.recordFree(layout.Size)
}

// CanAllocate implements Allocator by deferring to the backend's limits.
func (t *TrackingAllocator) CanAllocate(layout Layout) bool {
	return t.inner.CanAllocate(layout)
}

// Stats implements Allocator with a live snapshot.
func (t *TrackingAllocator) Stats() Stats {
	return t.stats.snapshot()
}

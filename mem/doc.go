// Package mem defines the allocator capability contract used by every
// memory consumer in this module.
//
// # Overview
//
// This package specifies what it means to be an allocator: the Allocator
// interface, the Layout descriptor for a requested region, the Flags
// bitmask for per-request modifiers, the closed allocation-error set, and
// the Stats snapshot for diagnostics. Concrete backends (heap, mapped,
// tracking, test) implement the contract; containers in mem/vec and
// mem/box consume it and never touch memory any other way.
//
// # Key Types
//
//   - Layout: a (size, alignment) pair describing a requested region
//   - Flags: combinable request modifiers (FlagZero, FlagNoWait, ...)
//   - Region: an owned block returned by a successful allocation
//   - Allocator: the capability contract every backend satisfies
//   - Stats: cumulative and instantaneous usage counters
//
// # The Contract
//
// A successful Allocate returns a Region whose address satisfies the
// Layout's alignment and whose size is at least the Layout's size. The
// caller owns that Region exclusively until it is passed back to Free or
// Reallocate on the same backend. Allocation failure is always one of
// three sentinel errors: ErrOutOfMemory, ErrInvalidAlignment, ErrZeroSize.
//
// Preconditions on Free, Reallocate and ZeroMemory (right backend, live
// region, compatible layout, in-bounds size) are caller obligations and
// are deliberately not checked on the hot path. The memtest backend checks
// them; production backends do not.
//
// # Backends
//
// HeapAllocator bridges to the Go heap and is the default. MappedAllocator
// obtains whole anonymous mappings from the OS on Unix platforms and falls
// back to the heap elsewhere. TrackingAllocator wraps any backend and
// maintains accurate Stats. None of them implements a placement algorithm;
// placement always belongs to the host.
//
// # Choosing a Backend
//
//	var a mem.Allocator = mem.DefaultAllocator
//
//	layout, err := mem.NewLayout(64, 8)
//	if err != nil {
//	    return err
//	}
//	r, err := a.Allocate(layout, mem.FlagZero)
//	if err != nil {
//	    return err
//	}
//	defer a.Free(r, layout)
//
// # Thread Safety
//
// The contract imposes no ordering between concurrent calls. Each backend
// documents its own policy; HeapAllocator and MappedAllocator are safe for
// concurrent use, TrackingAllocator is safe when its inner backend is.
package mem

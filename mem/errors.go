package mem

import "errors"

// The closed allocation-error set. Backends must map every internal
// failure onto one of these three before returning; no other allocation
// failure is representable.
var (
	// ErrOutOfMemory indicates the backend could not satisfy the request
	// with the memory available to it.
	ErrOutOfMemory = errors.New("mem: out of memory")

	// ErrInvalidAlignment indicates the requested alignment is not a
	// power of two or exceeds what the backend supports.
	ErrInvalidAlignment = errors.New("mem: invalid alignment")

	// ErrZeroSize indicates a zero-size request to an operation that
	// forbids it.
	ErrZeroSize = errors.New("mem: zero-size allocation")
)

// IsAllocError reports whether err belongs to the closed allocation-error
// set.
func IsAllocError(err error) bool {
	return errors.Is(err, ErrOutOfMemory) ||
		errors.Is(err, ErrInvalidAlignment) ||
		errors.Is(err, ErrZeroSize)
}

// checkLayout validates a layout the way every allocation entry point
// must, with ZeroSize taking precedence over alignment problems.
func checkLayout(l Layout) error {
	if l.Size == 0 {
		return ErrZeroSize
	}
	if !isPowerOfTwo(l.Align) {
		return ErrInvalidAlignment
	}
	return nil
}

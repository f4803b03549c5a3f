//go:build !unix

package mem

// MappedAllocator falls back to the heap backend on platforms without
// anonymous mmap. Same contract, no page rounding.
type MappedAllocator struct {
	HeapAllocator
}

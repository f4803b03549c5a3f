//go:build unix

package mem

import (
	"testing"

	"golang.org/x/sys/unix"
)

func Test_Mapped_PageAligned(t *testing.T) {
	a := MappedAllocator{}
	page := uintptr(unix.Getpagesize())

	layout := Layout{Size: 100, Align: 64}
	r, err := a.Allocate(layout, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Free(r, layout)

	if uintptr(r.Addr())%page != 0 {
		t.Fatalf("mapping base %p not page aligned", r.Addr())
	}
}

func Test_Mapped_AlignmentLimit(t *testing.T) {
	a := MappedAllocator{}
	page := uintptr(unix.Getpagesize())
	layout := Layout{Size: 64, Align: page * 2}
	if _, err := a.Allocate(layout, 0); err != ErrInvalidAlignment {
		t.Fatalf("got %v, want ErrInvalidAlignment past page alignment", err)
	}
}

func Test_Mapped_ZeroedPages(t *testing.T) {
	a := MappedAllocator{}
	layout := Layout{Size: 8192, Align: 8}
	r, err := a.Allocate(layout, FlagZero)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Free(r, layout)
	for i, b := range r.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d = %d, want 0", i, b)
		}
	}
}

// Test_Mapped_ReallocateInPlace: resizes within the mapped pages keep the
// address.
func Test_Mapped_ReallocateInPlace(t *testing.T) {
	a := MappedAllocator{}
	page := uintptr(unix.Getpagesize())

	old := Layout{Size: 100, Align: 8}
	r, err := a.Allocate(old, 0)
	if err != nil {
		t.Fatal(err)
	}
	r.Bytes()[0] = 0xAB

	grown := Layout{Size: page - 1, Align: 8} // same single page
	nr, err := a.Reallocate(r, old, grown, 0)
	if err != nil {
		t.Fatal(err)
	}
	if nr.Addr() != r.Addr() {
		t.Fatal("in-page resize moved the region")
	}
	if nr.Bytes()[0] != 0xAB {
		t.Fatal("contents lost in in-place resize")
	}
	if nr.Size() != grown.Size {
		t.Fatalf("resized region size %d, want %d", nr.Size(), grown.Size)
	}

	moved := Layout{Size: page * 3, Align: 8}
	mr, err := a.Reallocate(nr, grown, moved, 0)
	if err != nil {
		t.Fatal(err)
	}
	if mr.Bytes()[0] != 0xAB {
		t.Fatal("contents lost in moving resize")
	}
	a.Free(mr, moved)
}

// Test_Mapped_ReallocateInPlaceZeroFlag: a zero-flagged in-place grow
// must not re-expose bytes written before an earlier in-place shrink.
func Test_Mapped_ReallocateInPlaceZeroFlag(t *testing.T) {
	a := MappedAllocator{}

	full := Layout{Size: 2048, Align: 8}
	r, err := a.Allocate(full, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := range r.Bytes() {
		r.Bytes()[i] = 0xFF
	}

	shrunk := Layout{Size: 100, Align: 8}
	sr, err := a.Reallocate(r, full, shrunk, 0)
	if err != nil {
		t.Fatal(err)
	}
	if sr.Addr() != r.Addr() {
		t.Fatal("in-page shrink moved the region")
	}

	gr, err := a.Reallocate(sr, shrunk, full, FlagZero)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		if gr.Bytes()[i] != 0xFF {
			t.Fatalf("byte %d not preserved across zero-flagged grow", i)
		}
	}
	for i := 100; i < 2048; i++ {
		if gr.Bytes()[i] != 0 {
			t.Fatalf("byte %d = %#x after zero-flagged grow, want 0", i, gr.Bytes()[i])
		}
	}
	a.Free(gr, full)
}

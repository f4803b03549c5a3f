package memtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/mem"
)

func Test_Memtest_RecordsCalls(t *testing.T) {
	a := New()
	layout := mem.Layout{Size: 64, Align: 8}

	r, err := a.Allocate(layout, mem.FlagZero|mem.FlagNoWait)
	require.NoError(t, err)
	defer a.Free(r, layout)

	_, err = a.Allocate(mem.Layout{Size: 0, Align: 8}, 0)
	require.ErrorIs(t, err, mem.ErrZeroSize)

	calls := a.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, layout, calls[0].Layout)
	assert.True(t, calls[0].Flags.Contains(mem.FlagZero))
	assert.Equal(t, uintptr(0), calls[1].Layout.Size)
}

func Test_Memtest_FailureInjection(t *testing.T) {
	a := New()
	a.SetFailAfter(2, nil)
	layout := mem.Layout{Size: 16, Align: 8}

	r1, err := a.Allocate(layout, 0)
	require.NoError(t, err)
	r2, err := a.Allocate(layout, 0)
	require.NoError(t, err)

	_, err = a.Allocate(layout, 0)
	require.ErrorIs(t, err, mem.ErrOutOfMemory)

	a.Free(r1, layout)
	a.Free(r2, layout)
	a.AssertNoLeaks(t)
}

func Test_Memtest_ForcedError(t *testing.T) {
	a := New()
	a.SetFailAfter(0, mem.ErrInvalidAlignment)
	_, err := a.Allocate(mem.Layout{Size: 8, Align: 8}, 0)
	require.ErrorIs(t, err, mem.ErrInvalidAlignment)
}

func Test_Memtest_DoubleFreePanics(t *testing.T) {
	a := New()
	layout := mem.Layout{Size: 8, Align: 8}
	r, err := a.Allocate(layout, 0)
	require.NoError(t, err)
	a.Free(r, layout)

	assert.Panics(t, func() { a.Free(r, layout) })
}

func Test_Memtest_LayoutMismatchPanics(t *testing.T) {
	a := New()
	layout := mem.Layout{Size: 8, Align: 8}
	r, err := a.Allocate(layout, 0)
	require.NoError(t, err)

	assert.Panics(t, func() { a.Free(r, mem.Layout{Size: 16, Align: 8}) })
	a.Free(r, layout)
}

func Test_Memtest_LeakDetection(t *testing.T) {
	a := New()
	layout := mem.Layout{Size: 32, Align: 8}
	r, err := a.Allocate(layout, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Live())

	var spy spyT
	a.AssertNoLeaks(&spy)
	assert.True(t, spy.failed, "leak not reported")

	a.Free(r, layout)
	a.AssertNoLeaks(t)
}

func Test_Memtest_ReallocateFailureKeepsOld(t *testing.T) {
	a := New()
	old := mem.Layout{Size: 16, Align: 8}
	r, err := a.Allocate(old, 0)
	require.NoError(t, err)
	r.Bytes()[0] = 0x7F

	a.SetFailAfter(0, nil)
	_, err = a.Reallocate(r, old, mem.Layout{Size: 64, Align: 8}, 0)
	require.ErrorIs(t, err, mem.ErrOutOfMemory)

	// The old region is still live and intact.
	assert.Equal(t, 1, a.Live())
	assert.Equal(t, byte(0x7F), r.Bytes()[0])

	a.SetFailAfter(-1, nil)
	a.Free(r, old)
	a.AssertNoLeaks(t)
}

// spyT captures AssertNoLeaks failures without failing the real test.
type spyT struct{ failed bool }

func (s *spyT) Errorf(string, ...any) { s.failed = true }
func (s *spyT) Helper()               {}

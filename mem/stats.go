package mem

import (
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats is a snapshot of a backend's usage counters.
//
// TotalAllocated and TotalFreed are cumulative and never decrease.
// CurrentUsage always equals TotalAllocated - TotalFreed at snapshot time,
// and PeakUsage is the largest value CurrentUsage has ever reached, so
// PeakUsage >= CurrentUsage holds in every snapshot.
type Stats struct {
	TotalAllocated uintptr
	TotalFreed     uintptr
	PeakUsage      uintptr
	CurrentUsage   uintptr
}

// InUse returns the instantaneous usage.
func (s Stats) InUse() uintptr {
	return s.TotalAllocated - s.TotalFreed
}

var statsPrinter = message.NewPrinter(language.English)

// String renders the snapshot for humans, with grouped digits.
func (s Stats) String() string {
	return statsPrinter.Sprintf(
		"allocated %d B, freed %d B, in use %d B, peak %d B",
		uint64(s.TotalAllocated), uint64(s.TotalFreed),
		uint64(s.CurrentUsage), uint64(s.PeakUsage),
	)
}

// statsCounter is the synchronized counter set tracking backends share.
// Updates are atomic so a thread-safe backend stays thread-safe with
// tracking on; the peak is maintained with a CAS loop so it never
// decreases even under contention.
type statsCounter struct {
	allocated atomic.Uint64
	freed     atomic.Uint64
	peak      atomic.Uint64
}

func (c *statsCounter) recordAlloc(n uintptr) {
	allocated := c.allocated.Add(uint64(n))
	current := allocated - c.freed.Load()
	for {
		peak := c.peak.Load()
		if current <= peak || c.peak.CompareAndSwap(peak, current) {
			return
		}
	}
}

func (c *statsCounter) recordFree(n uintptr) {
	c.freed.Add(uint64(n))
}

// snapshot derives CurrentUsage from the totals so the documented
// identity holds within a single snapshot.
func (c *statsCounter) snapshot() Stats {
	allocated := c.allocated.Load()
	freed := c.freed.Load()
	current := allocated - freed
	peak := c.peak.Load()
	if peak < current {
		peak = current
	}
	return Stats{
		TotalAllocated: uintptr(allocated),
		TotalFreed:     uintptr(freed),
		PeakUsage:      uintptr(peak),
		CurrentUsage:   uintptr(current),
	}
}

package mem

import (
	"sync"
	"testing"
)

func Test_Heap_RegionSurvivesGC(t *testing.T) {
	a := HeapAllocator{}
	layout := Layout{Size: 32, Align: 8}
	r, err := a.Allocate(layout, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Free(r, layout)

	copy(r.Bytes(), "pinned")
	// Churn the heap; the registry must keep the region's backing alive.
	for i := 0; i < 1000; i++ {
		_ = make([]byte, 1024)
	}
	if string(r.Bytes()[:6]) != "pinned" {
		t.Fatal("region contents lost")
	}
}

func Test_Heap_OverflowingRequest(t *testing.T) {
	a := HeapAllocator{}
	layout := Layout{Size: ^uintptr(0) - 4, Align: 8}
	if _, err := a.Allocate(layout, 0); err != ErrOutOfMemory {
		t.Fatalf("got %v, want ErrOutOfMemory", err)
	}
}

// Test_Heap_ConcurrentUse exercises the shared registry from many
// goroutines; run with -race.
func Test_Heap_ConcurrentUse(t *testing.T) {
	a := HeapAllocator{}
	layout := Layout{Size: 64, Align: 16}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				r, err := a.Allocate(layout, 0)
				if err != nil {
					t.Error(err)
					return
				}
				r.Bytes()[0] = byte(i)
				a.Free(r, layout)
			}
		}()
	}
	wg.Wait()
}

func Test_Heap_DistinctRegions(t *testing.T) {
	a := HeapAllocator{}
	layout := Layout{Size: 16, Align: 8}
	seen := make(map[uintptr]bool)
	var regions []Region
	for i := 0; i < 32; i++ {
		r, err := a.Allocate(layout, 0)
		if err != nil {
			t.Fatal(err)
		}
		if seen[uintptr(r.Addr())] {
			t.Fatal("overlapping live regions")
		}
		seen[uintptr(r.Addr())] = true
		regions = append(regions, r)
	}
	for _, r := range regions {
		a.Free(r, layout)
	}
}

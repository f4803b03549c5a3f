package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/memkit/cmd/memctl/logger"
	"github.com/joshuapare/memkit/mem"
)

var (
	stressBackend string
	stressCount   int
	stressSize    uint64
	stressAlign   uint64
	stressLive    int
	stressZero    bool
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().StringVar(&stressBackend, "backend", "heap", "Backend to drive (heap or mapped)")
	cmd.Flags().IntVar(&stressCount, "count", 10000, "Number of allocations to perform")
	cmd.Flags().Uint64Var(&stressSize, "size", 256, "Bytes per allocation")
	cmd.Flags().Uint64Var(&stressAlign, "align", 8, "Alignment per allocation (power of two)")
	cmd.Flags().IntVar(&stressLive, "live", 64, "Regions held live at a time")
	cmd.Flags().BoolVar(&stressZero, "zero", false, "Request zeroed memory")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress",
		Short: "Run an allocate/free workload and report usage",
		Long: `The stress command performs a fixed number of allocations against the
chosen backend, keeping a bounded window of regions live, then frees
everything and prints the tracked statistics.

Example:
  memctl stress --backend mapped --count 100000 --size 4096
  memctl stress --size 64 --live 1024 --zero --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(cmd)
		},
	}
}

// stressReport is the JSON shape of a finished run.
type stressReport struct {
	Backend        string `json:"backend"`
	Count          int    `json:"count"`
	Size           uint64 `json:"size"`
	ElapsedMS      int64  `json:"elapsed_ms"`
	TotalAllocated uint64 `json:"total_allocated"`
	TotalFreed     uint64 `json:"total_freed"`
	PeakUsage      uint64 `json:"peak_usage"`
	CurrentUsage   uint64 `json:"current_usage"`
}

func runStress(cmd *cobra.Command) error {
	backend, err := pickBackend(stressBackend)
	if err != nil {
		return err
	}
	layout, err := mem.NewLayout(uintptr(stressSize), uintptr(stressAlign))
	if err != nil {
		return fmt.Errorf("bad request shape: %w", err)
	}
	if stressLive < 1 {
		stressLive = 1
	}

	var flags mem.Flags
	if stressZero {
		flags = flags.Or(mem.FlagZero)
	}

	a := mem.NewTracking(backend)
	logger.Info("stress starting",
		"backend", stressBackend, "count", stressCount,
		"size", stressSize, "align", stressAlign, "flags", flags.String())

	start := time.Now()
	window := make([]mem.Region, 0, stressLive)
	for i := 0; i < stressCount; i++ {
		r, err := a.Allocate(layout, flags)
		if err != nil {
			return fmt.Errorf("allocation %d failed: %w", i, err)
		}
		// Touch the region so mapped pages are actually committed.
		r.Bytes()[0] = byte(i)

		window = append(window, r)
		if len(window) == stressLive {
			a.Free(window[0], layout)
			window = window[1:]
		}
	}
	for _, r := range window {
		a.Free(r, layout)
	}
	elapsed := time.Since(start)

	stats := a.Stats()
	logger.Info("stress finished", "elapsed", elapsed.String(), "peak", uint64(stats.PeakUsage))

	out := cmd.OutOrStdout()
	if jsonOut {
		return printJSON(out, stressReport{
			Backend:        stressBackend,
			Count:          stressCount,
			Size:           stressSize,
			ElapsedMS:      elapsed.Milliseconds(),
			TotalAllocated: uint64(stats.TotalAllocated),
			TotalFreed:     uint64(stats.TotalFreed),
			PeakUsage:      uint64(stats.PeakUsage),
			CurrentUsage:   uint64(stats.CurrentUsage),
		})
	}

	p := message.NewPrinter(language.English)
	printInfo(out, "backend:   %s\n", stressBackend)
	printInfo(out, "requests:  %s of %s B\n",
		p.Sprint(stressCount), p.Sprint(stressSize))
	printInfo(out, "elapsed:   %s\n", elapsed.Round(time.Millisecond))
	printInfo(out, "allocated: %s B\n", p.Sprint(uint64(stats.TotalAllocated)))
	printInfo(out, "freed:     %s B\n", p.Sprint(uint64(stats.TotalFreed)))
	printInfo(out, "peak:      %s B\n", p.Sprint(uint64(stats.PeakUsage)))
	printInfo(out, "in use:    %s B\n", p.Sprint(uint64(stats.CurrentUsage)))
	printVerbose(out, "window:    %d live regions\n", stressLive)
	return nil
}

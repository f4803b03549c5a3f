package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/mem"
	"github.com/joshuapare/memkit/mem/box"
	"github.com/joshuapare/memkit/mem/vec"
)

var (
	probeBackend string
	probeItems   int
)

func init() {
	cmd := newProbeCmd()
	cmd.Flags().StringVar(&probeBackend, "backend", "heap", "Backend to probe (heap or mapped)")
	cmd.Flags().IntVar(&probeItems, "items", 100000, "Elements pushed through the container probe")
	rootCmd.AddCommand(cmd)
}

func newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Run the container probe and print a stats snapshot",
		Long: `The probe command pushes a batch of elements through the owning
containers (vec, box) on top of the chosen backend and prints the tracked
statistics, verifying that everything allocated came back.

Example:
  memctl probe --backend mapped --items 1000000 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(cmd)
		},
	}
}

type probeReport struct {
	Backend        string `json:"backend"`
	Items          int    `json:"items"`
	TotalAllocated uint64 `json:"total_allocated"`
	TotalFreed     uint64 `json:"total_freed"`
	PeakUsage      uint64 `json:"peak_usage"`
	CurrentUsage   uint64 `json:"current_usage"`
	Balanced       bool   `json:"balanced"`
}

func runProbe(cmd *cobra.Command) error {
	backend, err := pickBackend(probeBackend)
	if err != nil {
		return err
	}
	a := mem.NewTracking(backend)

	v := vec.New[uint64](a)
	for i := 0; i < probeItems; i++ {
		if err := v.Push(uint64(i)); err != nil {
			return fmt.Errorf("push %d: %w", i, err)
		}
	}
	var sum uint64
	for i := 0; i < v.Len(); i++ {
		sum += *v.At(i)
	}
	v.Free()

	b, err := box.New(a, sum, mem.FlagZero)
	if err != nil {
		return fmt.Errorf("box: %w", err)
	}
	sum = b.Into()

	stats := a.Stats()
	balanced := stats.CurrentUsage == 0

	out := cmd.OutOrStdout()
	if jsonOut {
		return printJSON(out, probeReport{
			Backend:        probeBackend,
			Items:          probeItems,
			TotalAllocated: uint64(stats.TotalAllocated),
			TotalFreed:     uint64(stats.TotalFreed),
			PeakUsage:      uint64(stats.PeakUsage),
			CurrentUsage:   uint64(stats.CurrentUsage),
			Balanced:       balanced,
		})
	}

	printInfo(out, "%s\n", stats)
	printVerbose(out, "checksum: %d\n", sum)
	if !balanced {
		return fmt.Errorf("probe leaked %d bytes", uint64(stats.CurrentUsage))
	}
	printInfo(out, "balanced: all regions returned\n")
	return nil
}

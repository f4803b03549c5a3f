package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/cmd/memctl/logger"
	"github.com/joshuapare/memkit/mem"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	logPath string
)

var rootCmd = &cobra.Command{
	Use:   "memctl",
	Short: "Exercise and inspect memkit allocator backends",
	Long: `memctl drives allocation workloads against the memkit backends and
reports their usage statistics. It exists to reproduce allocator behavior
from the command line: sizing peak usage, checking that a workload frees
what it allocates, and comparing the heap and mapped backends.`,
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logger.Options{Enabled: logPath != "", Path: logPath})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Write a debug log to this file")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// pickBackend maps the --backend flag onto a concrete allocator.
func pickBackend(name string) (mem.Allocator, error) {
	switch name {
	case "heap":
		return mem.HeapAllocator{}, nil
	case "mapped":
		return mem.MappedAllocator{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want heap or mapped)", name)
	}
}

// Helper functions for output

func printInfo(w io.Writer, format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(w, format, args...)
	}
}

func printVerbose(w io.Writer, format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(w, format, args...)
	}
}

// printJSON outputs data as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

package mem

import (
	"log/slog"
	"os"
)

// Compile-time toggle for verbose allocation logging; off in shipped
// builds. The MEMKIT_LOG_ALLOC env var enables the hook at runtime
// without rebuilding.
const debugAlloc = false

// Runtime toggle for allocation logging, controlled by MEMKIT_LOG_ALLOC.
var logAlloc = os.Getenv("MEMKIT_LOG_ALLOC") != ""

// debugAllocation emits one line per allocation request before dispatch.
// Purely observational: it never changes the outcome, and it compiles to
// a single predictable branch when disabled.
func debugAllocation(layout Layout, flags Flags) {
	if !debugAlloc && !logAlloc {
		return
	}
	slog.Debug("allocation requested",
		"size", uint64(layout.Size),
		"align", uint64(layout.Align),
		"flags", flags.String(),
	)
}

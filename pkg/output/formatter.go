package output

import (
	"fmt"
	"io"

	"github.com/sdejongh/mergenorris/pkg/compare"
	"github.com/sdejongh/mergenorris/pkg/models"
)

// Update represents a notification emitted while entries are processed
type Update struct {
	// Type is one of "scan", "action", "comparison", "error", "separator"
	Type string

	// Verb names the action for "action" updates: "move", "copy",
	// "overwrite", "remove", "skip", "identical"
	Verb string

	SourcePath string
	DestPath   string

	// DryRun marks simulated actions ("would move" instead of "move")
	DryRun bool

	// Detail carries extra context for skips
	Detail string

	// Total is the number of entries discovered, for "scan" updates
	Total int

	// Comparison carries the comparator result for "comparison" updates
	Comparison *compare.Comparison

	// Err carries the failure for "error" updates
	Err error
}

// Formatter defines the interface for run output.
// Implementations include human-readable, JSON, and progress-bar formatters.
type Formatter interface {
	// Start initializes the formatter. Informational output goes to out,
	// error lines to errOut.
	Start(out, errOut io.Writer) error

	// Progress reports one update during the run
	Progress(update Update) error

	// Complete finalizes output and prints the report
	Complete(report *models.RunReport) error

	// Name returns the formatter name
	Name() string
}

// writeSummary prints the fixed-order counter report. Shared by the human
// and progress formatters so the summary shape never diverges.
func writeSummary(w io.Writer, stats *models.RunStats) {
	fmt.Fprintf(w, "\nSummary:\n")
	fmt.Fprintf(w, "  moved:       %d\n", stats.Moved)
	fmt.Fprintf(w, "  copied:      %d\n", stats.Copied)
	fmt.Fprintf(w, "  overwritten: %d\n", stats.Overwritten)
	fmt.Fprintf(w, "  removed:     %d\n", stats.Removed)
	fmt.Fprintf(w, "  skipped:     %d\n", stats.Skipped)
	fmt.Fprintf(w, "  compared:    %d\n", stats.Compared)
	fmt.Fprintf(w, "  errors:      %d\n", stats.Errors)
}

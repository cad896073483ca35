package output

import (
	"fmt"
	"io"
	"time"

	"github.com/sdejongh/mergenorris/pkg/compare"
	"github.com/sdejongh/mergenorris/pkg/models"
)

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool
	summary bool
	quiet   bool
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter(verbose, summary, quiet bool) *HumanFormatter {
	return &HumanFormatter{
		verbose: verbose,
		summary: summary,
		quiet:   quiet,
	}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	f.out = out
	f.errOut = errOut
	return nil
}

// Progress reports one update during the run. Action and comparison lines
// are only emitted in verbose mode; errors always reach the error stream.
func (f *HumanFormatter) Progress(update Update) error {
	switch update.Type {
	case "error":
		// Errors reach the error stream even in quiet mode
		fmt.Fprintf(f.errOut, "error: %s: %v\n", update.SourcePath, update.Err)
		return nil

	case "action":
		if !f.verbose || f.quiet {
			return nil
		}
		f.writeAction(update)
		return nil

	case "comparison":
		if !f.verbose || f.quiet {
			return nil
		}
		f.writeComparison(update.Comparison)
		return nil

	case "separator":
		if f.verbose && !f.quiet {
			fmt.Fprintln(f.out)
		}
		return nil
	}

	return nil
}

// writeAction prints one verbose action line
func (f *HumanFormatter) writeAction(update Update) {
	verb := update.Verb
	if update.DryRun {
		verb = "would " + verb
	}

	switch update.Verb {
	case "skip":
		if update.Detail != "" {
			fmt.Fprintf(f.out, "%s %s (%s)\n", verb, update.SourcePath, update.Detail)
		} else {
			fmt.Fprintf(f.out, "%s %s\n", verb, update.SourcePath)
		}
	case "remove":
		fmt.Fprintf(f.out, "%s %s (identical to %s)\n", verb, update.SourcePath, update.DestPath)
	default:
		fmt.Fprintf(f.out, "%s %s -> %s\n", verb, update.SourcePath, update.DestPath)
	}
}

// writeComparison prints the measured metadata and the verdict
func (f *HumanFormatter) writeComparison(cmp *compare.Comparison) {
	if cmp == nil {
		return
	}

	fmt.Fprintf(f.out, "compare %s <-> %s\n", cmp.SourcePath, cmp.DestPath)
	fmt.Fprintf(f.out, "  source: %d bytes, mtime %s%s\n",
		cmp.SourceSize, cmp.SourceModTime.Format(time.RFC3339), checksumSuffix(cmp.SourceChecksum))
	fmt.Fprintf(f.out, "  dest:   %d bytes, mtime %s%s\n",
		cmp.DestSize, cmp.DestModTime.Format(time.RFC3339), checksumSuffix(cmp.DestChecksum))
	fmt.Fprintf(f.out, "  result: %s (%s)\n", cmp.Result, cmp.Reason)
}

// checksumSuffix formats the checksum part of a comparison line. Empty when
// the size check settled the comparison before any hashing.
func checksumSuffix(sum string) string {
	if sum == "" {
		return ""
	}
	return ", checksum " + sum
}

// Complete finalizes output and prints the summary when requested
func (f *HumanFormatter) Complete(report *models.RunReport) error {
	if f.out == nil {
		f.out = io.Discard
	}

	if f.summary && !f.quiet {
		writeSummary(f.out, &report.Stats)
		if report.DryRun {
			fmt.Fprintf(f.out, "\nDry run: no changes were made\n")
		}
	}

	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

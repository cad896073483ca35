package models

// RunStats holds the counters for one merge run. The run is single-threaded,
// one entry is fully resolved and executed before the next begins, so plain
// ints are sufficient. One RunStats instance exists per invocation and is
// passed by pointer through the walker, resolver, and executor.
type RunStats struct {
	// Moved counts sources moved to a previously absent destination
	Moved int
	// Copied counts sources copied to a previously absent destination
	Copied int
	// Overwritten counts existing destinations replaced by the source
	Overwritten int
	// Removed counts sources deleted because they were identical to the destination
	Removed int
	// Skipped counts entries left untouched (no force, declined, invalid source)
	Skipped int
	// Compared counts comparator invocations, exactly one per comparison
	// regardless of outcome. Orthogonal to the outcome counters above.
	Compared int
	// Errors counts entry-level failures
	Errors int
}

// Record increments the counter for one entry outcome. Each entry is
// classified into exactly one outcome.
func (s *RunStats) Record(outcome Outcome) {
	switch outcome {
	case OutcomeMoved:
		s.Moved++
	case OutcomeCopied:
		s.Copied++
	case OutcomeOverwritten:
		s.Overwritten++
	case OutcomeRemoved:
		s.Removed++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeError:
		s.Errors++
	}
}

// Processed returns the number of entries that reached an outcome
func (s *RunStats) Processed() int {
	return s.Moved + s.Copied + s.Overwritten + s.Removed + s.Skipped + s.Errors
}

// ExitCode returns the process exit status for the run: 0 when no entry
// produced an error, otherwise the error count capped at 255.
func (s *RunStats) ExitCode() int {
	if s.Errors == 0 {
		return 0
	}
	if s.Errors > 255 {
		return 255
	}
	return s.Errors
}

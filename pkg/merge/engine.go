package merge

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/mergenorris/internal/platform"
	"github.com/sdejongh/mergenorris/pkg/logging"
	"github.com/sdejongh/mergenorris/pkg/models"
	"github.com/sdejongh/mergenorris/pkg/output"
	"github.com/sdejongh/mergenorris/pkg/storage"
)

// Engine orchestrates one merge run
type Engine struct {
	fsys       storage.Filesystem
	comparator Comparator
	confirmer  Confirmer
	formatter  output.Formatter
	logger     logging.Logger
	config     *models.RunConfig

	// Out and ErrOut receive formatter output; they default to stdout and
	// stderr when left nil.
	Out    io.Writer
	ErrOut io.Writer
}

// NewEngine creates a merge engine
func NewEngine(
	fsys storage.Filesystem,
	comparator Comparator,
	confirmer Confirmer,
	formatter output.Formatter,
	logger logging.Logger,
	config *models.RunConfig,
) *Engine {
	return &Engine{
		fsys:       fsys,
		comparator: comparator,
		confirmer:  confirmer,
		formatter:  formatter,
		logger:     logger,
		config:     config,
	}
}

// Run merges every source into the destination and returns the run report.
// Entry-level failures are counted in the report, not returned; the returned
// error covers run-level failures only (bad configuration, cancellation).
func (e *Engine) Run(ctx context.Context, sources []string, dest string) (*models.RunReport, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("at least one source is required")
	}
	if err := e.config.Validate(); err != nil {
		return nil, err
	}

	out := e.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := e.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}

	report := &models.RunReport{
		OperationID: uuid.New().String(),
		Sources:     sources,
		DestPath:    dest,
		DryRun:      e.config.DryRun,
		StartTime:   time.Now(),
	}

	if err := e.formatter.Start(out, errOut); err != nil {
		return nil, fmt.Errorf("failed to start output formatter: %w", err)
	}

	stats := &report.Stats
	resolver := NewResolver(e.comparator, e.confirmer, e.config, stats)
	executor := NewExecutor(e.fsys, e.config, e.logger)
	walker := NewWalker(e.fsys, resolver, executor, e.formatter, e.logger, e.config, stats, report)

	e.logger.Info(ctx, "merge started", logging.Fields{
		"operation_id": report.OperationID,
		"sources":      len(sources),
		"dest":         dest,
		"dry_run":      e.config.DryRun,
	})

	destPath := platform.NormalizePath(dest)

	var runErr error
	for _, source := range sources {
		if err := walker.ProcessSource(ctx, platform.NormalizePath(source), destPath); err != nil {
			runErr = err
			break
		}
		// One separator closes each source argument's output block
		e.formatter.Progress(output.Update{Type: "separator"})
	}

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	report.Status = runStatus(stats)

	e.logger.Info(ctx, "merge finished", logging.Fields{
		"operation_id": report.OperationID,
		"status":       string(report.Status),
		"moved":        stats.Moved,
		"copied":       stats.Copied,
		"overwritten":  stats.Overwritten,
		"removed":      stats.Removed,
		"skipped":      stats.Skipped,
		"compared":     stats.Compared,
		"errors":       stats.Errors,
	})

	if err := e.formatter.Complete(report); err != nil && runErr == nil {
		runErr = err
	}

	return report, runErr
}

// runStatus classifies the overall run from its counters
func runStatus(stats *models.RunStats) models.RunStatus {
	switch {
	case stats.Errors == 0:
		return models.StatusSuccess
	case stats.Processed() == stats.Errors:
		return models.StatusFailed
	default:
		return models.StatusPartial
	}
}

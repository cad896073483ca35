package merge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"github.com/sdejongh/mergenorris/pkg/logging"
	"github.com/sdejongh/mergenorris/pkg/models"
	"github.com/sdejongh/mergenorris/pkg/output"
	"github.com/sdejongh/mergenorris/pkg/storage"
)

// Walker enumerates source arguments into transfer entries and drives each
// one through the resolve/execute cycle. Processing is single-threaded; one
// entry is fully settled before the next begins, because entries share
// parent directories and pruning walks paths another entry could repopulate.
type Walker struct {
	fsys      storage.Filesystem
	resolver  *Resolver
	executor  *Executor
	formatter output.Formatter
	logger    logging.Logger
	config    *models.RunConfig
	stats     *models.RunStats
	report    *models.RunReport
}

// NewWalker creates a walker for one run
func NewWalker(
	fsys storage.Filesystem,
	resolver *Resolver,
	executor *Executor,
	formatter output.Formatter,
	logger logging.Logger,
	config *models.RunConfig,
	stats *models.RunStats,
	report *models.RunReport,
) *Walker {
	return &Walker{
		fsys:      fsys,
		resolver:  resolver,
		executor:  executor,
		formatter: formatter,
		logger:    logger,
		config:    config,
		stats:     stats,
		report:    report,
	}
}

// ProcessSource classifies one source argument and processes it: a
// directory merges into the destination, a regular file transfers as a
// single entry, and an inaccessible source is skipped without touching
// anything.
func (w *Walker) ProcessSource(ctx context.Context, source, dest string) error {
	info, err := w.fsys.Stat(source)
	if err != nil {
		w.stats.Record(models.OutcomeSkipped)
		w.formatter.Progress(output.Update{Type: "scan", Total: 1})
		w.emitSkip(models.TransferEntry{SourcePath: source}, "source is not accessible")
		w.logger.Warn(ctx, "skipping inaccessible source", logging.Fields{
			"source": source,
			"error":  err.Error(),
		})
		return nil
	}

	if info.IsDir {
		return w.mergeDir(ctx, source, dest)
	}
	return w.transferFile(ctx, source, dest)
}

// transferFile processes a single regular file. When the destination is an
// existing directory the file keeps its name inside it; otherwise the
// destination path is taken literally.
func (w *Walker) transferFile(ctx context.Context, source, dest string) error {
	destPath := dest
	if destInfo, err := w.fsys.Stat(dest); err == nil && destInfo.IsDir {
		destPath = filepath.Join(dest, filepath.Base(source))
	}

	w.formatter.Progress(output.Update{Type: "scan", Total: 1})
	w.processEntry(ctx, models.TransferEntry{
		SourcePath: source,
		DestPath:   destPath,
	})
	return nil
}

// mergeDir merges every regular file under source into dest, re-rooting
// relative paths, then prunes directories the merge left empty.
func (w *Walker) mergeDir(ctx context.Context, source, dest string) error {
	rootEntry := models.TransferEntry{SourcePath: source, DestPath: dest}

	destInfo, err := w.fsys.Stat(dest)
	switch {
	case err == nil && !destInfo.IsDir:
		w.recordError(ctx, rootEntry, fmt.Errorf("destination %s is not a directory", dest))
		return nil

	case err != nil && errors.Is(err, fs.ErrNotExist):
		if !w.config.CreateDest {
			w.recordError(ctx, rootEntry, fmt.Errorf("destination %s does not exist (use --create-dest)", dest))
			return nil
		}
		if !w.config.DryRun {
			if err := w.fsys.MkdirAll(dest); err != nil {
				w.recordError(ctx, rootEntry, fmt.Errorf("failed to create destination: %w", err))
				return nil
			}
		}

	case err != nil:
		w.recordError(ctx, rootEntry, fmt.Errorf("failed to stat destination: %w", err))
		return nil
	}

	listed, err := w.fsys.List(source)
	if err != nil {
		w.recordError(ctx, rootEntry, fmt.Errorf("failed to enumerate source: %w", err))
		return nil
	}

	var entries []models.TransferEntry
	var dirs []string
	for _, item := range listed {
		if item.IsDir {
			dirs = append(dirs, item.Path)
			continue
		}
		entries = append(entries, models.TransferEntry{
			SourcePath: item.Path,
			DestPath:   filepath.Join(dest, item.RelativePath),
			SourceRoot: source,
		})
	}

	w.formatter.Progress(output.Update{Type: "scan", Total: len(entries)})

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.processEntry(ctx, entry)
	}

	if !w.config.DryRun {
		w.pruneTree(ctx, dirs, source)
	}
	return nil
}

// processEntry settles one transfer entry: resolve the action, execute it,
// and record exactly one outcome.
func (w *Walker) processEntry(ctx context.Context, entry models.TransferEntry) {
	destInfo, err := w.fsys.Stat(entry.DestPath)
	destExists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		w.recordError(ctx, entry, fmt.Errorf("failed to stat destination: %w", err))
		return
	}
	if destExists && destInfo.IsDir {
		w.recordError(ctx, entry, fmt.Errorf("destination %s is a directory", entry.DestPath))
		return
	}

	decision := w.resolver.Resolve(entry, destExists)
	if decision.Comparison != nil {
		w.formatter.Progress(output.Update{Type: "comparison", Comparison: decision.Comparison})
	}

	switch decision.Action {
	case models.ActionProceed:
		outcome, err := w.executor.Transfer(ctx, entry, destExists)
		if err != nil {
			w.recordError(ctx, entry, err)
			return
		}
		w.stats.Record(outcome)
		w.emitAction(transferVerb(outcome), entry)

	case models.ActionRemoveSource:
		if err := w.executor.RemoveSource(ctx, entry); err != nil {
			w.recordError(ctx, entry, err)
			return
		}
		w.stats.Record(models.OutcomeRemoved)
		w.formatter.Progress(output.Update{
			Type:       "action",
			Verb:       "remove",
			SourcePath: entry.SourcePath,
			DestPath:   entry.DestPath,
			DryRun:     w.config.DryRun,
		})

	case models.ActionSkipIdentical:
		// Files are already equivalent; nothing moves and no counter
		// beyond the comparison changes.
		w.emitSkip(entry, "identical to destination")

	case models.ActionSkipNoForce:
		w.stats.Record(models.OutcomeSkipped)
		w.emitSkip(entry, "destination exists, use --force")

	case models.ActionSkipDeclined:
		w.stats.Record(models.OutcomeSkipped)
		w.emitSkip(entry, "overwrite declined")

	case models.ActionError:
		w.recordError(ctx, entry, decision.Err)
	}
}

// pruneTree removes directories left empty by the merge, deepest first, then
// attempts to remove the source root itself. Every removal is best effort; a
// directory still holding a skipped file simply stays.
func (w *Walker) pruneTree(ctx context.Context, dirs []string, source string) {
	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))

	for _, dir := range dirs {
		if err := w.fsys.Remove(dir); err == nil {
			w.logger.Debug(ctx, "pruned empty directory", logging.Fields{"path": dir})
		}
	}

	if err := w.fsys.Remove(source); err == nil {
		w.logger.Debug(ctx, "removed empty source root", logging.Fields{"path": source})
	}
}

// recordError settles an entry as failed: counter, report, error stream
func (w *Walker) recordError(ctx context.Context, entry models.TransferEntry, err error) {
	w.stats.Record(models.OutcomeError)
	w.report.Errors = append(w.report.Errors, models.EntryError{
		Path:      entry.SourcePath,
		Action:    models.ActionError,
		Error:     err.Error(),
		Timestamp: time.Now(),
	})
	w.formatter.Progress(output.Update{
		Type:       "error",
		SourcePath: entry.SourcePath,
		Err:        err,
	})
	w.logger.Error(ctx, "entry failed", err, logging.Fields{
		"source": entry.SourcePath,
		"dest":   entry.DestPath,
	})
}

// emitSkip reports a skipped entry with the reason
func (w *Walker) emitSkip(entry models.TransferEntry, detail string) {
	w.formatter.Progress(output.Update{
		Type:       "action",
		Verb:       "skip",
		SourcePath: entry.SourcePath,
		DestPath:   entry.DestPath,
		DryRun:     w.config.DryRun,
		Detail:     detail,
	})
}

// emitAction reports a completed transfer
func (w *Walker) emitAction(verb string, entry models.TransferEntry) {
	w.formatter.Progress(output.Update{
		Type:       "action",
		Verb:       verb,
		SourcePath: entry.SourcePath,
		DestPath:   entry.DestPath,
		DryRun:     w.config.DryRun,
	})
}

// transferVerb maps a transfer outcome to its verbose output verb
func transferVerb(outcome models.Outcome) string {
	switch outcome {
	case models.OutcomeCopied:
		return "copy"
	case models.OutcomeOverwritten:
		return "overwrite"
	default:
		return "move"
	}
}

package merge

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/sdejongh/mergenorris/internal/platform"
	"github.com/sdejongh/mergenorris/pkg/logging"
	"github.com/sdejongh/mergenorris/pkg/models"
	"github.com/sdejongh/mergenorris/pkg/ratelimit"
	"github.com/sdejongh/mergenorris/pkg/storage"
)

// Executor performs the physical action for a resolved entry. In dry-run
// mode every method reports the outcome a real run would produce without
// touching the filesystem.
type Executor struct {
	fsys    storage.Filesystem
	limiter *ratelimit.Limiter
	config  *models.RunConfig
	logger  logging.Logger
}

// NewExecutor creates an executor for one run
func NewExecutor(fsys storage.Filesystem, config *models.RunConfig, logger logging.Logger) *Executor {
	return &Executor{
		fsys:    fsys,
		limiter: ratelimit.NewLimiter(config.BandwidthLimit),
		config:  config,
		logger:  logger,
	}
}

// Transfer moves or copies the source to the destination and returns the
// outcome classification. destExists distinguishes an overwrite from a
// plain transfer; the caller has already resolved the conflict policy.
func (e *Executor) Transfer(ctx context.Context, entry models.TransferEntry, destExists bool) (models.Outcome, error) {
	outcome := models.OutcomeMoved
	switch {
	case destExists:
		outcome = models.OutcomeOverwritten
	case e.config.CopyMode:
		outcome = models.OutcomeCopied
	}

	if e.config.DryRun {
		return outcome, nil
	}

	if err := e.fsys.MkdirAll(filepath.Dir(entry.DestPath)); err != nil {
		return outcome, fmt.Errorf("failed to create destination directory: %w", err)
	}

	if e.config.CopyMode {
		if err := e.copyFile(ctx, entry.SourcePath, entry.DestPath); err != nil {
			return outcome, err
		}
	} else {
		if err := e.fsys.Rename(entry.SourcePath, entry.DestPath); err != nil {
			return outcome, fmt.Errorf("failed to move file: %w", err)
		}
	}

	if e.config.PreserveTimes {
		e.preserveTimes(ctx, entry)
	}

	return outcome, nil
}

// copyFile streams the source into the destination, honoring the bandwidth
// limit when one is configured. The source is retained.
func (e *Executor) copyFile(ctx context.Context, sourcePath, destPath string) error {
	src, err := e.fsys.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	dst, err := e.fsys.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	reader := ratelimit.NewReader(ctx, src, e.limiter)
	buf := make([]byte, e.config.BufferSize)

	if _, err := io.CopyBuffer(dst, reader, buf); err != nil {
		dst.Close()
		return fmt.Errorf("failed to copy file: %w", err)
	}

	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to finalize destination file: %w", err)
	}

	return nil
}

// preserveTimes carries the source modification time to the destination.
// Best effort: the content transfer already succeeded, so a failure here is
// logged and never escalated to an entry error. After a move the source path
// is gone and the destination already carries the original times.
func (e *Executor) preserveTimes(ctx context.Context, entry models.TransferEntry) {
	if !e.config.CopyMode {
		return
	}

	info, err := e.fsys.Stat(entry.SourcePath)
	if err != nil {
		e.logger.Debug(ctx, "cannot stat source for timestamp preservation", logging.Fields{
			"path":  entry.SourcePath,
			"error": err.Error(),
		})
		return
	}

	if err := e.fsys.Chtimes(entry.DestPath, info.ModTime, info.ModTime); err != nil {
		e.logger.Debug(ctx, "cannot preserve modification time", logging.Fields{
			"path":  entry.DestPath,
			"error": err.Error(),
		})
	}
}

// RemoveSource deletes a source file proven identical to its destination,
// then prunes parent directories the deletion left empty.
func (e *Executor) RemoveSource(ctx context.Context, entry models.TransferEntry) error {
	if e.config.DryRun {
		return nil
	}

	if err := e.fsys.Remove(entry.SourcePath); err != nil {
		return fmt.Errorf("failed to remove source file: %w", err)
	}

	e.pruneUpward(ctx, filepath.Dir(entry.SourcePath), entry.SourceRoot)
	return nil
}

// pruneUpward removes empty ancestor directories one level at a time,
// walking from dir toward the filesystem or relative-root boundary. It stops
// at the first directory that cannot be removed (Remove fails on non-empty
// directories, which is the load bearing termination condition). When root is
// set the walk additionally stops there, leaving the source root itself for
// the end-of-merge pass; a single-file removal has no root and walks until a
// non-empty directory or the boundary ends it.
func (e *Executor) pruneUpward(ctx context.Context, dir, root string) {
	for !platform.IsRootBoundary(dir) {
		if root != "" && (dir == root || !platform.Contains(root, dir)) {
			return
		}
		if err := e.fsys.Remove(dir); err != nil {
			return
		}
		e.logger.Debug(ctx, "pruned empty directory", logging.Fields{"path": dir})
		dir = filepath.Dir(dir)
	}
}

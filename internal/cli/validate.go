package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sdejongh/mergenorris/internal/platform"
	"github.com/sdejongh/mergenorris/pkg/config"
	"github.com/sdejongh/mergenorris/pkg/models"
)

// validateMergeArgs rejects invocations that could never be safe: a source
// merged onto itself, or source and destination nested in each other.
// Per-path existence is not checked here; an inaccessible source is an
// entry-level skip, not a usage error.
func validateMergeArgs(sources []string, dest string) error {
	if err := platform.ValidatePath(dest); err != nil {
		return err
	}
	destAbs, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("failed to resolve destination path: %w", err)
	}

	for _, source := range sources {
		if err := platform.ValidatePath(source); err != nil {
			return err
		}
		sourceAbs, err := filepath.Abs(source)
		if err != nil {
			return fmt.Errorf("failed to resolve source path: %w", err)
		}

		if sourceAbs == destAbs {
			return fmt.Errorf("source and destination cannot be the same: %s", sourceAbs)
		}
		if strings.HasPrefix(destAbs, sourceAbs+string(filepath.Separator)) {
			return fmt.Errorf("destination cannot be inside source %s", sourceAbs)
		}
		if strings.HasPrefix(sourceAbs, destAbs+string(filepath.Separator)) {
			return fmt.Errorf("source %s cannot be inside the destination", sourceAbs)
		}
	}

	return nil
}

// loadConfig loads configuration from file or returns defaults
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	if mergeFlags.Checksum != "" {
		cfg.Merge.Checksum = models.ChecksumAlgorithm(mergeFlags.Checksum)
	}
	if mergeFlags.PreserveTimes {
		cfg.Merge.PreserveTimes = true
	}
	if mergeFlags.Output != "" {
		cfg.Output.Format = mergeFlags.Output
	}
	if mergeFlags.Summary {
		cfg.Output.Summary = true
	}
	if globalFlags.Quiet {
		cfg.Output.Quiet = true
	}
}

// buildRunConfig folds the effective configuration and the policy flags into
// the immutable per-run configuration
func buildRunConfig(cfg *config.Config) (*models.RunConfig, error) {
	bandwidth := cfg.Performance.BandwidthLimit
	if mergeFlags.Bandwidth != "" {
		parsed, err := parseBandwidth(mergeFlags.Bandwidth)
		if err != nil {
			return nil, err
		}
		bandwidth = parsed
	}

	runConfig := &models.RunConfig{
		Force:           mergeFlags.Force,
		Compare:         mergeFlags.Compare,
		RemoveIdentical: mergeFlags.RemoveIdentical,
		DryRun:          mergeFlags.DryRun,
		CopyMode:        mergeFlags.Copy,
		Interactive:     mergeFlags.Interactive,
		PreserveTimes:   cfg.Merge.PreserveTimes,
		Verbose:         globalFlags.Verbose,
		Summary:         cfg.Output.Summary,
		CreateDest:      mergeFlags.CreateDest,
		Checksum:        cfg.Merge.Checksum,
		BufferSize:      cfg.Performance.BufferSize,
		BandwidthLimit:  bandwidth,
	}

	if err := runConfig.Validate(); err != nil {
		return nil, err
	}
	return runConfig, nil
}

// parseBandwidth parses a bandwidth limit like "500K", "10M" or "1G" into
// bytes per second. A bare number is taken as bytes per second.
func parseBandwidth(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" {
		return 0, nil
	}

	multiplier := int64(1)
	switch s[len(s)-1] {
	case 'K':
		multiplier = 1024
		s = s[:len(s)-1]
	case 'M':
		multiplier = 1024 * 1024
		s = s[:len(s)-1]
	case 'G':
		multiplier = 1024 * 1024 * 1024
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid bandwidth limit %q (use a number with optional K, M or G suffix)", s)
	}

	return value * multiplier, nil
}

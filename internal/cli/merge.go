package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/mergenorris/pkg/compare"
	"github.com/sdejongh/mergenorris/pkg/logging"
	"github.com/sdejongh/mergenorris/pkg/merge"
	"github.com/sdejongh/mergenorris/pkg/output"
	"github.com/sdejongh/mergenorris/pkg/storage"
)

// MergeFlags holds the merge flags
type MergeFlags struct {
	Force           bool
	Compare         bool
	RemoveIdentical bool
	DryRun          bool
	Copy            bool
	Interactive     bool
	PreserveTimes   bool
	Summary         bool
	CreateDest      bool

	Checksum  string
	Output    string
	Bandwidth string

	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var mergeFlags MergeFlags

// AddMergeFlags binds the merge flags to the root command
func AddMergeFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&mergeFlags.Force, "force", "f", false, "overwrite existing destination files without asking")
	cmd.Flags().BoolVarP(&mergeFlags.Compare, "compare", "c", false, "compare existing destination files by size and checksum before acting")
	cmd.Flags().BoolVarP(&mergeFlags.RemoveIdentical, "remove-identical", "r", false, "remove the source when comparison proves it identical to the destination")
	cmd.Flags().BoolVarP(&mergeFlags.DryRun, "dry-run", "n", false, "report intended actions without touching the filesystem")
	cmd.Flags().BoolVar(&mergeFlags.Copy, "copy", false, "copy files instead of moving them")
	cmd.Flags().BoolVarP(&mergeFlags.Interactive, "interactive", "i", false, "ask before overwriting an existing destination file")
	cmd.Flags().BoolVarP(&mergeFlags.PreserveTimes, "preserve-times", "p", false, "carry the source modification time to the destination")
	cmd.Flags().BoolVarP(&mergeFlags.Summary, "summary", "s", false, "print the counter report at the end of the run")
	cmd.Flags().BoolVar(&mergeFlags.CreateDest, "create-dest", false, "create the destination directory if it doesn't exist")

	cmd.Flags().StringVar(&mergeFlags.Checksum, "checksum", "", "checksum algorithm for comparisons: crc32, md5, sha256")
	cmd.Flags().StringVarP(&mergeFlags.Output, "output", "o", "", "output format: human, json, progress")
	cmd.Flags().StringVarP(&mergeFlags.Bandwidth, "bandwidth", "b", "", "bandwidth limit for copies (e.g., \"10M\", \"1G\")")

	cmd.Flags().StringVar(&mergeFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&mergeFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&mergeFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
}

// RunMerge executes the merge: every positional argument but the last is a
// source, the last is the destination.
func RunMerge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sources := args[:len(args)-1]
	dest := args[len(args)-1]

	if err := validateMergeArgs(sources, dest); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagsToConfig(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	runConfig, err := buildRunConfig(cfg)
	if err != nil {
		return err
	}

	fsys := storage.NewOS()

	hasher, err := compare.ForAlgorithm(runConfig.Checksum, runConfig.BufferSize)
	if err != nil {
		return err
	}
	comparator := compare.NewChecksumComparator(fsys, hasher)

	var formatter output.Formatter
	switch cfg.Output.Format {
	case "json":
		formatter = output.NewJSONFormatter()
	case "progress":
		formatter = output.NewProgressFormatter(runConfig.Summary)
	default:
		formatter = output.NewHumanFormatter(runConfig.Verbose, runConfig.Summary, cfg.Output.Quiet)
	}

	logger, err := createLogger(mergeFlags.LogFile, mergeFlags.LogFormat, mergeFlags.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// The prompt goes to stderr so it never pollutes machine-readable output
	confirmer := merge.NewTerminalConfirmer(os.Stdin, os.Stderr)

	engine := merge.NewEngine(fsys, comparator, confirmer, formatter, logger, runConfig)

	report, err := engine.Run(ctx, sources, dest)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	os.Exit(report.Stats.ExitCode())
	return nil
}

// createLogger creates a logger based on configuration
func createLogger(logFile, logFormat, logLevel string) (logging.Logger, error) {
	if logFile == "" {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch logFormat {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:   logFile,
		Format: format,
		Level:  logging.ParseLevel(logLevel),
	})
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/mergenorris/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "mergenorris [flags] SOURCE... DEST",
		Short: "Merge file trees with per-file move, copy, skip and remove decisions",
		Long: `mergenorris merges one or more sources into a destination, deciding per
file whether to move, copy, overwrite, skip or remove based on existence
checks, size and checksum comparison, and the force/interactive policy.
Dry-run mode rehearses the whole merge without touching the filesystem.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.MinimumNArgs(2),
		RunE:          cli.RunMerge,
		SilenceUsage:  false,
		SilenceErrors: true,
	}

	cli.AddGlobalFlags(rootCmd)
	cli.AddMergeFlags(rootCmd)
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"brace/internal/driver"
	"brace/internal/project"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [file.brc]",
		Short: "Evaluate a brace program",
		Long: `Run parses and evaluates a brace program, writing its output to stdout.
Without an argument the [run].main entry of the nearest brace.toml is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runProgram,
	}
}

func runProgram(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		if cfg.manifest == nil {
			return errors.New("no file given and no " + project.ManifestName + " found")
		}
		path, err = cfg.manifest.MainPath()
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.manifest.Path, err)
		}
	}

	opts := driver.RunOptions{
		ParseOptions: driver.ParseOptions{
			MaxDiagnostics: cfg.maxDiagnostics,
			Timer:          cfg.newTimer(),
		},
	}
	res, err := driver.Run(cmd.Context(), path, cmd.OutOrStdout(), opts)
	if err != nil {
		return err
	}
	cfg.printTimer(cmd, opts.Timer)
	if cfg.printDiagnostics(cmd, res.Bag, res.FileSet) {
		return errReported
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"brace/internal/diagfmt"
	"brace/internal/driver"
)

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree file.brc",
		Short: "Show the bracket tree of a brace source file",
		Args:  cobra.ExactArgs(1),
		RunE:  runTree,
	}
}

func runTree(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result, err := driver.BuildTree(args[0], cfg.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tree failed: %w", err)
	}
	if cfg.printDiagnostics(cmd, result.Bag, result.FileSet) {
		return errReported
	}
	return diagfmt.FormatTreePretty(cmd.OutOrStdout(), result.Tree, result.FileSet)
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"brace/internal/project"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Initialize a new brace project",
		Long: `Initialize a new brace project by creating a manifest (brace.toml) and a
hello-world entry point (main.brc). Without [dir] the current directory is
used; a missing directory is created. Existing files are never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
	cmd.Flags().String("name", "", "package name (defaults to the directory name)")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return fmt.Errorf("failed to get name flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	created, err := project.Init(target, name)
	if err != nil {
		return err
	}
	if quiet {
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized brace project in %s\n", relToWD(filepath.Dir(created[0])))
	for _, path := range created {
		fmt.Fprintf(out, "  - %s\n", filepath.Base(path))
	}
	return nil
}

func relToWD(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil {
		return rel
	}
	return path
}

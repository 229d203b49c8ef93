package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"brace/internal/diagfmt"
	"brace/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.brc",
		Short: "Parse a brace source file and print its AST",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|tree|json|msgpack)")
	cmd.Flags().Bool("cache", false, "reuse parsed ASTs from the disk cache")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "tree", "json", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := driver.ParseOptions{
		MaxDiagnostics: cfg.maxDiagnostics,
		Timer:          cfg.newTimer(),
	}
	if useCache {
		cache, err := driver.OpenDiskCache("brace")
		if err != nil {
			if !cfg.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: disk cache disabled: %v\n", err)
			}
		} else {
			opts.Cache = cache
		}
	}

	res, err := driver.Parse(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}
	defer cfg.printTimer(cmd, opts.Timer)

	if cfg.printDiagnostics(cmd, res.Bag, res.FileSet) {
		return errReported
	}

	out := cmd.OutOrStdout()
	switch format {
	case "tree":
		return diagfmt.FormatASTTree(out, res.Root)
	case "json":
		return diagfmt.FormatASTJSON(out, res.Root)
	case "msgpack":
		return diagfmt.FormatASTMsgpack(out, res.Root)
	default:
		return diagfmt.FormatASTPretty(out, res.Root, res.FileSet)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"brace/internal/diagfmt"
	"brace/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.brc",
		Short: "Tokenize a brace source file",
		Long:  `Tokenize breaks a brace source file into tokens, trivia included`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], cfg.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// scanning never fails; suspicious tokens are only reported
	cfg.printDiagnostics(cmd, result.Bag, result.FileSet)

	if format == "json" {
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	}
	return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"brace/internal/driver"
	"brace/internal/source"
)

func newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [flags] <path> [path...]",
		Short: "Format brace source files",
		Long: `Fmt prints brace sources in canonical form. Without flags the result
goes to stdout; --write rewrites files in place and --check only lists files
that would change. Files with comments are never rewritten, since comments
are not kept.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFmt,
	}
	cmd.Flags().Bool("check", false, "list files whose formatting differs, without writing")
	cmd.Flags().Bool("write", false, "rewrite files in place")
	cmd.Flags().Bool("verify", false, "verify that formatting preserves the program structure")
	cmd.Flags().String("format", "text", "report format for --check and --write (text|json)")
	return cmd
}

func runFmt(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	verify, err := cmd.Flags().GetBool("verify")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if check && write {
		return fmt.Errorf("fmt: --check cannot be used with --write")
	}
	toStdout := !check && !write
	if toStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --format is only supported with --check or --write")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	results, err := driver.FormatPaths(cmd.Context(), args, driver.FormatOptions{
		Check:          check,
		Stdout:         toStdout,
		MaxDiagnostics: cfg.maxDiagnostics,
	})
	if err != nil {
		return err
	}

	if verify {
		if err := verifyFormatting(results); err != nil {
			return err
		}
	}

	var hasErrors, hasChanges bool
	for _, res := range results {
		if res.Bag != nil {
			cfg.printDiagnostics(cmd, res.Bag, res.FileSet)
		}
	}

	switch {
	case toStdout:
		renderFmtStdout(cmd, results, &hasErrors)
	case outputFormat == "json":
		if err := renderFmtJSON(cmd.OutOrStdout(), results, check); err != nil {
			return err
		}
		for _, res := range results {
			hasErrors = hasErrors || res.Err != nil
			hasChanges = hasChanges || res.Changed
		}
	default:
		renderFmtText(cmd, results, check, cfg.quiet, &hasErrors, &hasChanges)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return errReported
	}
	return nil
}

// verifyFormatting round-trips every file that formatted cleanly.
func verifyFormatting(results []driver.FormatResult) error {
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		fs := source.NewFileSet()
		id, err := fs.Load(res.Path)
		if err != nil {
			return err
		}
		if ok, msg := driver.RunFmtCheck(fs.Get(id)); !ok {
			return fmt.Errorf("%s: %s", res.Path, msg)
		}
	}
	return nil
}

func renderFmtStdout(cmd *cobra.Command, results []driver.FormatResult, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(cmd.ErrOrStderr(), "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = cmd.OutOrStdout().Write(res.Formatted)
	}
}

func renderFmtText(cmd *cobra.Command, results []driver.FormatResult, check, quiet bool, hasErrors, hasChanges *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(cmd.ErrOrStderr(), "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		if !res.Changed {
			continue
		}
		*hasChanges = true
		switch {
		case check:
			fmt.Fprintln(cmd.OutOrStdout(), res.Path)
		case !quiet:
			fmt.Fprintf(cmd.OutOrStdout(), "reformatted %s\n", res.Path)
		}
	}
}

func renderFmtJSON(w io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"brace/internal/buildpipeline"
	"brace/internal/diag"
	"brace/internal/diagfmt"
	"brace/internal/driver"
	"brace/internal/source"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file.brc|directory>",
		Short: "Check brace sources for syntax errors",
		Long:  `Check parses a brace source file, or every *.brc file under a directory, and reports diagnostics`,
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
	cmd.Flags().String("format", "pretty", "diagnostic format (pretty|short|json)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directories (0=auto)")
	cmd.Flags().String("ui", "off", "progress UI for directories (auto|on|off)")
	return cmd
}

type checkResult struct {
	fileSet *source.FileSet
	bag     *diag.Bag
	files   int
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	var res checkResult
	if info.IsDir() {
		res, err = checkDir(cmd, cfg, path, jobs, shouldUseTUI(mode, cmd.OutOrStdout()))
	} else {
		res, err = checkFile(cmd, cfg, path, format)
	}
	if err != nil {
		return err
	}

	res.bag.Sort()
	if err := printCheckDiagnostics(cmd, cfg, res, format); err != nil {
		return err
	}
	if res.bag.HasErrors() {
		return errReported
	}
	if !cfg.quiet && format != "json" {
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d %s checked\n", res.files, plural(res.files, "file", "files"))
	}
	return nil
}

func checkFile(cmd *cobra.Command, cfg *cliConfig, path, format string) (checkResult, error) {
	timer := cfg.newTimer()
	parsed, err := driver.Parse(cmd.Context(), path, driver.ParseOptions{
		MaxDiagnostics: cfg.maxDiagnostics,
		Timer:          timer,
	})
	if err != nil {
		return checkResult{}, err
	}
	if timer != nil {
		if format == "json" {
			driver.AppendTimingDiagnostic(parsed.Bag, parsed.File, "check", timer)
		} else {
			cfg.printTimer(cmd, timer)
		}
	}
	return checkResult{fileSet: parsed.FileSet, bag: parsed.Bag, files: 1}, nil
}

func checkDir(cmd *cobra.Command, cfg *cliConfig, dir string, jobs int, useTUI bool) (checkResult, error) {
	opts := driver.ParseDirOptions{
		ParseOptions: driver.ParseOptions{MaxDiagnostics: cfg.maxDiagnostics},
		Jobs:         jobs,
	}
	var timings *buildpipeline.Timings
	if cfg.timings {
		timings = &buildpipeline.Timings{}
		opts.Progress = buildpipeline.TimingSink{Timings: timings}
	}

	var (
		fileSet *source.FileSet
		results []driver.ParseDirResult
		err     error
	)
	if useTUI {
		files, listErr := driver.ListSourceFiles(dir)
		if listErr != nil {
			return checkResult{}, listErr
		}
		display := buildpipeline.NormalizeFiles(files, dir)
		fileSet, results, err = parseDirWithUI(cmd.Context(), cmd.OutOrStdout(), "checking "+dir, dir, display, opts)
	} else {
		fileSet, results, err = driver.ParseDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return checkResult{}, err
	}

	bag := diag.NewBag(cfg.maxDiagnostics)
	for _, r := range results {
		bag.Merge(r.Bag)
	}
	printStageTimings(cmd.ErrOrStderr(), timings)
	return checkResult{fileSet: fileSet, bag: bag, files: len(results)}, nil
}

func printCheckDiagnostics(cmd *cobra.Command, cfg *cliConfig, res checkResult, format string) error {
	switch format {
	case "json":
		return diagfmt.JSON(cmd.OutOrStdout(), res.bag, res.fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         cfg.pathMode,
			IncludeNotes:     true,
		})
	case "short":
		items := res.bag.Items()
		ptrs := make([]*diag.Diagnostic, len(items))
		for i := range items {
			ptrs[i] = &items[i]
		}
		if out := diag.FormatShortDiagnostics(ptrs, res.fileSet, false); out != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), out)
		}
		return nil
	default:
		cfg.printDiagnostics(cmd, res.bag, res.fileSet)
		return nil
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

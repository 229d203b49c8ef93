package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"brace/internal/diag"
	"brace/internal/diagfmt"
	"brace/internal/observ"
	"brace/internal/project"
	"brace/internal/source"
)

// cliConfig merges persistent flags with the [diagnostics] defaults of the
// nearest brace.toml. Flags set on the command line win.
type cliConfig struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	pathMode       diagfmt.PathMode
	manifest       *project.Manifest // nil outside a project
}

func loadConfig(cmd *cobra.Command) (*cliConfig, error) {
	flags := cmd.Root().PersistentFlags()

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	pathModeStr, err := flags.GetString("path-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return nil, fmt.Errorf("invalid --path-mode %q (expected auto|absolute|relative|basename)", pathModeStr)
	}

	cfg := &cliConfig{
		quiet:          quiet,
		timings:        timings,
		maxDiagnostics: maxDiagnostics,
		pathMode:       pathMode,
	}

	if wd, err := os.Getwd(); err == nil {
		m, found, err := project.Discover(wd)
		switch {
		case err != nil && found:
			if !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: ignoring %s: %v\n", project.ManifestName, err)
			}
		case err != nil:
			return nil, err
		case found:
			cfg.manifest = m
			if !quiet {
				for _, key := range m.Unknown {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: unknown key %s\n", m.Path, key)
				}
			}
			if !flags.Changed("max-diagnostics") && m.MaxDiagnostics > 0 {
				cfg.maxDiagnostics = m.MaxDiagnostics
			}
			if !flags.Changed("color") && m.Color != "" {
				colorFlag = m.Color
			}
		}
	}

	switch colorFlag {
	case "on":
		cfg.color = true
	case "off":
		cfg.color = false
	case "auto":
		cfg.color = isTerminal(cmd.ErrOrStderr())
	default:
		return nil, fmt.Errorf("invalid --color %q (expected auto|on|off)", colorFlag)
	}
	return cfg, nil
}

// printDiagnostics writes bag to stderr in pretty form. It reports whether
// the bag held errors.
func (c *cliConfig) printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) bool {
	if bag == nil || bag.Len() == 0 {
		return false
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{
		Color:     c.color,
		Context:   2,
		PathMode:  c.pathMode,
		ShowNotes: true,
	})
	return bag.HasErrors()
}

func (c *cliConfig) newTimer() *observ.Timer {
	if !c.timings {
		return nil
	}
	return observ.NewTimer()
}

func (c *cliConfig) printTimer(cmd *cobra.Command, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
}

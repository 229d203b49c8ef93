package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"brace/internal/driver"
	"brace/internal/version"
)

// errReported means diagnostics were already printed; main only sets the
// exit status.
var errReported = errors.New("errors reported")

func newRootCmd(sess *session) *cobra.Command {
	root := &cobra.Command{
		Use:           "brace",
		Short:         "brace command language toolchain",
		Long:          `brace scans, parses, formats and runs programs written in the brace command language`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return sess.setupTracing(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", driver.DefaultMaxDiagnostics, "maximum number of diagnostics to collect per file")
	pf.String("path-mode", "auto", "how file paths are printed (auto|absolute|relative|basename)")
	pf.String("trace", "", "write trace events to PATH (- for stderr, *.ndjson for JSON)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace event format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")

	root.AddCommand(
		newTokenizeCmd(),
		newTreeCmd(),
		newParseCmd(),
		newCheckCmd(),
		newFmtCmd(),
		newRunCmd(),
		newInitCmd(),
		newCleanCmd(),
		newVersionCmd(),
	)
	return root
}

// execute runs the CLI with args and returns the process exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	sess := &session{}
	root := newRootCmd(sess)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	sess.close(stderr, err != nil)
	if err == nil {
		return 0
	}
	if !errors.Is(err, errReported) {
		fmt.Fprintf(stderr, "brace: %v\n", err)
	}
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// isTerminal reports whether w is an *os.File attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

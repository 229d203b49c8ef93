package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"brace/internal/trace"
)

// session owns resources that outlive a single command's RunE.
type session struct {
	tracer        trace.Tracer
	stopHeartbeat func()
}

// setupTracing inspects trace-related flags and attaches a tracer to the
// command context.
func (s *session) setupTracing(cmd *cobra.Command) error {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := root.PersistentFlags().GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := root.PersistentFlags().GetString("trace-format")
	if err != nil {
		return fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	ringSize, err := root.PersistentFlags().GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := root.PersistentFlags().GetDuration("trace-heartbeat")
	if err != nil {
		return fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace alone means "phase"
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return fmt.Errorf("invalid trace mode: %w", err)
	}
	format, ok := trace.ParseFormat(formatStr)
	if !ok {
		return fmt.Errorf("invalid trace format %q (expected auto|text|ndjson)", formatStr)
	}
	if mode != trace.ModeRing && traceOutput == "" {
		traceOutput = "-"
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		Output:     streamFor(cmd, traceOutput),
		RingSize:   ringSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	s.tracer = tracer

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)

	s.stopHeartbeat = trace.StartHeartbeat(tracer, heartbeatInterval)
	return nil
}

// streamFor routes "-" to the command's stderr so tests can capture it.
func streamFor(cmd *cobra.Command, output string) io.Writer {
	if output == "-" {
		return cmd.ErrOrStderr()
	}
	return nil
}

// close stops the heartbeat and flushes the tracer. When the command
// failed, the ring buffer is dumped to stderr.
func (s *session) close(stderr io.Writer, failed bool) {
	if s.stopHeartbeat != nil {
		s.stopHeartbeat()
	}
	if s.tracer == nil {
		return
	}
	if failed {
		if _, err := trace.DumpOnFailure(s.tracer, stderr); err != nil {
			fmt.Fprintf(stderr, "trace: dump error: %v\n", err)
		}
	}
	if err := s.tracer.Flush(); err != nil {
		fmt.Fprintf(stderr, "trace: flush error: %v\n", err)
	}
	if err := s.tracer.Close(); err != nil {
		fmt.Fprintf(stderr, "trace: close error: %v\n", err)
	}
}

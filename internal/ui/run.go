package ui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"brace/internal/buildpipeline"
)

// RunProgress renders progress for files until events is closed.
// Keyboard input is not read, so the program never steals stdin.
func RunProgress(ctx context.Context, title string, files []string, events <-chan buildpipeline.Event, out io.Writer) error {
	model := NewProgressModel(title, files, events)
	prog := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInput(nil),
	)
	_, err := prog.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

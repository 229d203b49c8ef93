package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"brace/internal/buildpipeline"
)

func newTestModel(files ...string) *progressModel {
	ch := make(chan buildpipeline.Event)
	close(ch)
	return NewProgressModel("check", files, ch).(*progressModel)
}

func TestProgressPercent(t *testing.T) {
	m := newTestModel("a.brc", "b.brc")
	require.Zero(t, m.percent())

	m.applyEvent(buildpipeline.Event{File: "a.brc", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
	require.InDelta(t, 0.3, m.percent(), 1e-9)
	require.Equal(t, "parsing", m.items[0].status)

	m.applyEvent(buildpipeline.Event{File: "a.brc", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusDone, Elapsed: time.Millisecond})
	m.applyEvent(buildpipeline.Event{File: "b.brc", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusError})
	require.InDelta(t, 1.0, m.percent(), 1e-9)
	require.Equal(t, 1, m.failed)
}

func TestProgressIgnoresUnknownFiles(t *testing.T) {
	m := newTestModel("a.brc")
	m.applyEvent(buildpipeline.Event{File: "zzz.brc", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusDone})
	require.Equal(t, "queued", m.items[0].status)
}

func TestProgressStageLabel(t *testing.T) {
	m := newTestModel("a.brc")
	m.applyEvent(buildpipeline.Event{Stage: buildpipeline.StageRun, Status: buildpipeline.StatusWorking})
	require.Equal(t, "running", m.stageLabel)
	require.Contains(t, m.View(), "check (running)")
}

func TestProgressDoneView(t *testing.T) {
	m := newTestModel("a.brc", "b.brc")
	m.applyEvent(buildpipeline.Event{File: "b.brc", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusError})

	_, cmd := m.Update(doneMsg{})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	view := m.View()
	require.True(t, strings.Contains(view, "done: check, 1 failed"), view)
	require.Contains(t, view, "a.brc")
	require.Contains(t, view, "b.brc")
}

func TestProgressListenReportsClose(t *testing.T) {
	m := newTestModel("a.brc")
	require.Equal(t, doneMsg{}, m.listenForEvent()())
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "abcd...", truncate("abcdefghijklmnop", 7))
	require.Equal(t, "ab", truncate("abcdef", 2))
}

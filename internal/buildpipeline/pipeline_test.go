package buildpipeline

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmitHelpers(t *testing.T) {
	var rec Recorder
	EmitQueued(&rec, []string{"a.brc", "b.brc"})
	boom := errors.New("boom")
	EmitStage(&rec, []string{"a.brc"}, StageParse, StatusError, boom, time.Millisecond)

	events := rec.Events()
	if len(events) != 4 {
		t.Fatalf("got %d events: %+v", len(events), events)
	}
	if events[0].Status != StatusQueued || events[0].Stage != StageScan {
		t.Errorf("queued event = %+v", events[0])
	}
	if events[2].File != "" || events[3].File != "a.brc" || !errors.Is(events[3].Err, boom) {
		t.Errorf("stage events = %+v", events[2:])
	}

	// nil sinks are ignored
	EmitQueued(nil, []string{"x"})
	EmitStage(nil, nil, StageRun, StatusDone, nil, 0)
}

func TestChannelAndFuncSinks(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{File: "x", Status: StatusDone})
	if got := <-ch; got.File != "x" {
		t.Errorf("channel got %+v", got)
	}
	ChannelSink{}.OnEvent(Event{})

	var n int
	FuncSink(func(Event) { n++ }).OnEvent(Event{})
	FuncSink(nil).OnEvent(Event{})
	if n != 1 {
		t.Errorf("func sink called %d times", n)
	}
}

func TestTimingSink(t *testing.T) {
	var timings Timings
	var rec Recorder
	sink := TimingSink{Timings: &timings, Next: &rec}

	sink.OnEvent(Event{File: "a", Stage: StageParse, Status: StatusWorking, Elapsed: time.Second})
	sink.OnEvent(Event{File: "a", Stage: StageParse, Status: StatusDone, Elapsed: 2 * time.Millisecond})
	sink.OnEvent(Event{File: "b", Stage: StageParse, Status: StatusError, Elapsed: 3 * time.Millisecond})
	sink.OnEvent(Event{Stage: StageRun, Status: StatusDone, Elapsed: time.Hour})

	if got := timings.Duration(StageParse); got != 5*time.Millisecond {
		t.Errorf("parse = %v", got)
	}
	if timings.Has(StageRun) {
		t.Errorf("pipeline-wide events must not be timed")
	}
	if got := timings.Sum(StageScan, StageParse); got != 5*time.Millisecond {
		t.Errorf("sum = %v", got)
	}
	if len(rec.Events()) != 4 {
		t.Errorf("next sink got %d events", len(rec.Events()))
	}
}

func TestNormalizeFiles(t *testing.T) {
	base := t.TempDir()
	files := []string{
		filepath.Join(base, "b.brc"),
		filepath.Join(base, "sub", "a.brc"),
		filepath.Join(base, "b.brc"),
		"",
	}
	got := NormalizeFiles(files, base)
	want := []string{"b.brc", "sub/a.brc"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestStatusTerminal(t *testing.T) {
	for s, want := range map[Status]bool{
		StatusQueued:  false,
		StatusWorking: false,
		StatusDone:    true,
		StatusError:   true,
	} {
		if s.Terminal() != want {
			t.Errorf("%s.Terminal() = %v", s, !want)
		}
	}
}

package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		emit  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeCommand, false},
		{LevelDebug, ScopeCommand, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.emit {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.emit)
		}
	}
	if !LevelError.Records(ScopePass) || LevelError.Records(ScopeFile) {
		t.Errorf("LevelError should record pass boundaries only")
	}
}

func TestParseLevelAndMode(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if l.String() != s {
			t.Errorf("round trip %q -> %q", s, l.String())
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected error for unknown level")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Errorf("ParseMode(both) = %v, %v", m, err)
	}
	if f, ok := ParseFormat("ndjson"); !ok || f != FormatNDJSON {
		t.Errorf("ParseFormat(ndjson) = %v, %v", f, ok)
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewStreamTracer(&buf, LevelPhase, FormatText))

	pctx, span := Start(ctx, ScopePass, "parse")
	span.With("atoms", "3").With("commands", "2")
	// filtered out at phase level
	Mark(pctx, ScopeCommand, "echo", "")
	span.End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ parse") {
		t.Errorf("begin line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "← parse (ok) {atoms=3, commands=2}") {
		t.Errorf("end line = %q", lines[1])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), tee{NewStreamTracer(&buf, LevelDebug, FormatNDJSON), ring})

	rctx, span := Start(ctx, ScopePass, "run")
	Mark(rctx, ScopeCommand, "echo", "hi")
	span.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 events, got:\n%s", buf.String())
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &got); err != nil {
		t.Fatalf("invalid json %q: %v", lines[1], err)
	}
	if got["name"] != "echo" || got["scope"] != "command" || got["kind"] != "point" {
		t.Errorf("unexpected event %v", got)
	}
	if want := ring.Snapshot()[0].SpanID; got["parent_id"] != float64(want) {
		t.Errorf("parent_id = %v, want %d", got["parent_id"], want)
	}
}

func TestSpansNestThroughContext(t *testing.T) {
	ring := NewRingTracer(16, LevelDetail)
	ctx := WithTracer(context.Background(), ring)

	dctx, dir := Start(ctx, ScopeDriver, "parse-dir")
	_, file := Start(dctx, ScopeFile, "file:a.brc")
	file.End("ok")
	dir.End("")

	snap := ring.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("got %d events", len(snap))
	}
	if snap[0].ParentID != 0 || snap[1].ParentID != snap[0].SpanID {
		t.Errorf("file span parent = %d, want %d", snap[1].ParentID, snap[0].SpanID)
	}
	if snap[2].Kind != KindSpanEnd || snap[2].Name != "file:a.brc" {
		t.Errorf("unexpected end event %+v", snap[2])
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopePass, Name: name})
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d, want 3", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("snap[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Errorf("dump:\n%s", buf.String())
	}
}

func TestRingRecordsAtErrorLevel(t *testing.T) {
	r := NewRingTracer(8, LevelError)
	ctx := WithTracer(context.Background(), r)
	_, span := Start(ctx, ScopePass, "tree")
	span.End("")
	Mark(ctx, ScopeFile, "file:a.brc", "")
	if n := len(r.Snapshot()); n != 2 {
		t.Errorf("recorded %d events, want 2", n)
	}
}

func TestNewBoth(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	ring := FindRing(tr)
	if ring == nil {
		t.Fatal("both mode must keep a ring")
	}

	_, span := Start(WithTracer(context.Background(), tr), ScopeDriver, "check")
	span.End("")
	if len(ring.Snapshot()) != 2 {
		t.Errorf("ring got %d events", len(ring.Snapshot()))
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("stream got:\n%s", buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr != Nop || tr.Enabled() {
		t.Errorf("off tracer should be Nop")
	}
	_, span := Start(WithTracer(context.Background(), tr), ScopeDriver, "x")
	if span.With("k", "v").End("") != 0 {
		t.Errorf("nop span should report zero duration")
	}
	if _, err := New(Config{Level: LevelPhase}); err == nil {
		t.Errorf("missing mode must be rejected")
	}
}

func TestNewPicksNDJSONFromPath(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, Output: &buf, OutputPath: "trace.ndjson"})
	if err != nil {
		t.Fatal(err)
	}
	Mark(WithTracer(context.Background(), tr), ScopePass, "scan", "")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected json output, got %q", buf.String())
	}
}

func TestFromContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Errorf("empty context should yield Nop")
	}
	if FromContext(WithTracer(context.Background(), nil)) != Nop {
		t.Errorf("nil tracer should yield Nop")
	}
}

func TestHeartbeat(t *testing.T) {
	r := NewRingTracer(64, LevelPhase)
	stop := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	stop()
	stop()
	snap := r.Snapshot()
	if len(snap) == 0 || snap[0].Kind != KindHeartbeat || snap[0].Detail != "#1" {
		t.Fatalf("no heartbeat recorded: %v", snap)
	}
	StartHeartbeat(Nop, time.Millisecond)()
}

func TestDumpOnFailure(t *testing.T) {
	var buf bytes.Buffer
	if ok, err := DumpOnFailure(NewStreamTracer(&buf, LevelPhase, FormatText), &buf); ok || err != nil || buf.Len() != 0 {
		t.Fatalf("stream tracer has no ring: %v %v %q", ok, err, buf.String())
	}

	ring := NewRingTracer(4, LevelPhase)
	multi := tee{NewStreamTracer(&bytes.Buffer{}, LevelPhase, FormatText), ring}
	if FindRing(multi) != ring || FindRing(Nop) != nil {
		t.Fatal("FindRing must look inside a tee and nowhere else")
	}
	_, span := Start(WithTracer(context.Background(), multi), ScopePass, "parse")
	span.End("error")

	ok, err := DumpOnFailure(multi, &buf)
	if !ok || err != nil {
		t.Fatalf("DumpOnFailure = %v, %v", ok, err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || lines[0] != "trace: last events before failure:" || !strings.Contains(lines[2], "← parse (error)") {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

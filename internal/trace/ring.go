package trace

import (
	"fmt"
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory so a failed command
// can show what led up to it.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	next   int // slot for the next event
	count  int // events stored, at most len(events)
	level  Level
}

// NewRingTracer keeps up to capacity events; capacity <= 0 means 4096.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

// Emit stores ev, overwriting the oldest event when full. Events are
// stored at LevelError too, unlike a stream.
func (t *RingTracer) Emit(ev *Event) {
	if !t.level.Records(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}
	stored := *ev
	if stored.Seq == 0 {
		stored.Seq = NextSeq()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.events[t.next] = stored
	t.next = (t.next + 1) % len(t.events)
	t.count = min(t.count+1, len(t.events))
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, 0, t.count)
	first := (t.next - t.count + len(t.events)) % len(t.events)
	for i := range t.count {
		out = append(out, t.events[(first+i)%len(t.events)])
	}
	return out
}

// Dump writes the stored events in format.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }

// FindRing returns the ring buffer behind t, if any.
func FindRing(t Tracer) *RingTracer {
	switch t := t.(type) {
	case *RingTracer:
		return t
	case tee:
		for _, inner := range t {
			if r := FindRing(inner); r != nil {
				return r
			}
		}
	}
	return nil
}

// DumpOnFailure writes the ring behind t to w as text under a short
// header. It reports whether there was a ring to dump.
func DumpOnFailure(t Tracer, w io.Writer) (bool, error) {
	ring := FindRing(t)
	if ring == nil {
		return false, nil
	}
	if _, err := fmt.Fprintln(w, "trace: last events before failure:"); err != nil {
		return true, err
	}
	return true, ring.Dump(w, FormatText)
}

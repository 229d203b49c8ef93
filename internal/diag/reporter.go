package diag

import "brace/internal/source"

// Reporter receives diagnostics from a pipeline phase.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter stores into Bag; diagnostics past the bag limit are dropped.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// Warn reports a warning with no notes.
func Warn(r Reporter, code Code, primary source.Span, msg string) {
	r.Report(New(SevWarning, code, primary, msg))
}

// Error reports an error with no notes.
func Error(r Reporter, code Code, primary source.Span, msg string) {
	r.Report(NewError(code, primary, msg))
}

type dedupKey struct {
	span source.Span
	code Code
	sev  Severity
	msg  string
}

// DedupReporter forwards each distinct diagnostic once. Two diagnostics
// are the same when code, severity, primary span and message match;
// notes are not compared.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) {
	key := dedupKey{span: d.Primary, code: d.Code, sev: d.Severity, msg: d.Message}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(d)
}

package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"brace/internal/diag"
	"brace/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info *color.Color
	code, path      *color.Color
	gutter, caret   *color.Color
	note            *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes diagnostics in human-readable form, in bag order
// (call bag.Sort() first). Each diagnostic is printed as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline under the primary span,
// then the notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)

	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d", formatPath(f, fs, opts.PathMode), start.Line, start.Col),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message,
	)
	writeSnippet(w, f, fs, d.Primary, opts, p)

	if !opts.ShowNotes && d.Code != diag.ObsTimings {
		return
	}
	for _, n := range d.Notes {
		nf := fs.Get(n.Span.File)
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
			p.note.Sprint("note:"), formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col, n.Msg)
		writeSnippet(w, nf, fs, n.Span, opts, p)
	}
}

// writeSnippet prints the line holding span.Start, preceded by up to
// opts.Context lines, with an underline below it. Spans reaching past the
// line end are underlined to the end of the line.
func writeSnippet(w io.Writer, f *source.File, fs *source.FileSet, span source.Span, opts PrettyOpts, p palette) {
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)

	first := start.Line
	if opts.Context > 0 {
		if c := uint32(opts.Context); c < first { // #nosec G115 -- Context > 0
			first -= c
		} else {
			first = 1
		}
	}
	gutterWidth := len(fmt.Sprint(start.Line))

	for ln := first; ln <= start.Line; ln++ {
		text := displayLine(f.GetLine(ln), opts.Width)
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), text)
	}

	lo := int(start.Col - 1)
	hi := len(line)
	if end.Line == start.Line {
		hi = int(end.Col - 1)
	}
	lo = min(lo, len(line))
	hi = min(max(hi, lo), len(line))

	pad := displayWidth(line[:lo])
	width := max(displayWidth(line[:hi])-pad, 1)
	if opts.Width > 0 && pad >= opts.Width {
		return
	}
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s%s\n",
		p.gutter.Sprintf("%*s |", gutterWidth, ""),
		strings.Repeat(" ", pad),
		p.caret.Sprint(underline),
	)
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}

func displayLine(s string, limit int) string {
	s = expandTabs(s)
	if limit > 0 && runewidth.StringWidth(s) > limit {
		return runewidth.Truncate(s, limit, "…")
	}
	return s
}

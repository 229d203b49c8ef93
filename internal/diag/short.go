package diag

import (
	"fmt"
	"path/filepath"
	"strings"

	"brace/internal/source"
)

// FormatShortDiagnostics renders one line per diagnostic in the form
//
//	path:line:col: severity CODE: message
//
// in the given order. Notes follow their diagnostic as "note" lines when
// includeNotes is set. Paths are relative to the file set's base directory.
// Spans that do not resolve are skipped.
func FormatShortDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []string
	for _, d := range diags {
		if line, ok := shortLine(fs, d.Primary, d.Severity.label(), d.Code, d.Message); ok {
			lines = append(lines, line)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if line, ok := shortLine(fs, n.Span, "note", d.Code, n.Msg); ok {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func shortLine(fs *source.FileSet, sp source.Span, label string, code Code, msg string) (string, bool) {
	if int(sp.File) >= fs.Len() {
		return "", false
	}
	file := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	path := filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
	return fmt.Sprintf("%s:%d:%d: %s %s: %s", path, start.Line, start.Col, label, code.ID(), oneLine(msg)), true
}

// oneLine folds line breaks so each entry stays on a single line.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}

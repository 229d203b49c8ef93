// Package testkit holds checks shared by tests of several packages.
package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"brace/internal/ast"
	"brace/internal/source"
	"brace/internal/token"
)

// CheckSpanInvariants validates the spans of a parsed file:
//  1. the root span lies within the file content and points at sf
//  2. every command span lies within its group span and covers its atoms
//  3. atoms and commands of a group appear in source order without overlap
func CheckSpanInvariants(root ast.Atom, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if root.Kind != ast.Batch {
		return fmt.Errorf("root is %v, want Batch", root.Kind)
	}
	if root.Span.File != sf.ID {
		return fmt.Errorf("root span points to different file id: got=%d want=%d", root.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.Span.Start > root.Span.End || root.Span.End > lenContent {
		return fmt.Errorf("root span %v outside content of %d bytes", root.Span, lenContent)
	}
	return checkGroup(root)
}

func checkGroup(group ast.Atom) error {
	if len(group.Commands) == 0 {
		return fmt.Errorf("group %v at %v has no commands", group.Kind, group.Span)
	}
	prevEnd := group.Span.Start
	for i, cmd := range group.Commands {
		if !group.Span.Contains(cmd.Span) {
			return fmt.Errorf("command %d span %v outside group span %v", i, cmd.Span, group.Span)
		}
		if cmd.Span.Start < prevEnd {
			return fmt.Errorf("command %d span %v overlaps previous end %d", i, cmd.Span, prevEnd)
		}
		prevEnd = cmd.Span.End

		atomEnd := cmd.Span.Start
		for j, atom := range cmd.Atoms {
			if !cmd.Span.Contains(atom.Span) {
				return fmt.Errorf("atom %d span %v outside command span %v", j, atom.Span, cmd.Span)
			}
			if atom.Span.Empty() {
				return fmt.Errorf("atom %d has empty span %v", j, atom.Span)
			}
			if atom.Span.Start < atomEnd {
				return fmt.Errorf("atom %d span %v overlaps previous end %d", j, atom.Span, atomEnd)
			}
			atomEnd = atom.Span.End
			if atom.Kind.IsGroup() {
				if err := checkGroup(atom); err != nil {
					return err
				}
			}
		}
		if len(cmd.Atoms) > 0 && cmd.Span.End != atomEnd {
			return fmt.Errorf("command %d span %v does not end at its last atom (%d)", i, cmd.Span, atomEnd)
		}
	}
	return nil
}

// CheckTokenCoverage verifies that toks tile content exactly: contiguous,
// in order, each Text equal to the bytes it spans.
func CheckTokenCoverage(toks []token.Token, content []byte) error {
	var off uint32
	var sb strings.Builder
	for i, tok := range toks {
		if tok.Span.Start != off {
			return fmt.Errorf("token %d (%s) starts at %d, want %d", i, tok.Describe(), tok.Span.Start, off)
		}
		if tok.Span.Empty() {
			return fmt.Errorf("token %d (%s) is empty", i, tok.Describe())
		}
		if int(tok.Span.End) > len(content) || tok.Text != string(content[tok.Span.Start:tok.Span.End]) {
			return fmt.Errorf("token %d (%s) text %q does not match its span %v", i, tok.Describe(), tok.Text, tok.Span)
		}
		off = tok.Span.End
		sb.WriteString(tok.Text)
	}
	if sb.String() != string(content) {
		return fmt.Errorf("tokens cover %d of %d bytes", sb.Len(), len(content))
	}
	return nil
}

// Package format prints an AST in canonical brace syntax.
//
// Top-level commands go one per line, each terminated by ';'. Nested
// commands are joined by "; " inside "{ ... }" or "[...]". Empty commands
// are dropped since they have no effect. Comments are not part of the AST
// and are therefore not preserved.
package format

import (
	"bytes"
	"fmt"
	"strconv"

	"brace/internal/ast"
	"brace/internal/lexer"
	"brace/internal/strlit"
)

// Atom renders root, which must be a Batch, as a complete source file.
func Atom(root ast.Atom) ([]byte, error) {
	if root.Kind != ast.Batch {
		return nil, fmt.Errorf("format: root must be a Batch, got %v", root.Kind)
	}
	var buf bytes.Buffer
	for _, cmd := range root.Commands {
		if cmd.Empty() {
			continue
		}
		if err := writeCommand(&buf, cmd); err != nil {
			return nil, err
		}
		buf.WriteString(";\n")
	}
	return buf.Bytes(), nil
}

// Inline renders a single atom the way it appears inside a command.
func Inline(a ast.Atom) (string, error) {
	var buf bytes.Buffer
	if err := writeAtom(&buf, a); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeCommand(buf *bytes.Buffer, cmd ast.Command) error {
	for i, a := range cmd.Atoms {
		if i > 0 {
			buf.WriteByte(' ')
		}
		if err := writeAtom(buf, a); err != nil {
			return err
		}
	}
	return nil
}

func writeAtom(buf *bytes.Buffer, a ast.Atom) error {
	switch a.Kind {
	case ast.Identifier:
		if !lexer.IsIdentifier(a.Name) {
			return fmt.Errorf("format: %q is not a valid identifier", a.Name)
		}
		buf.WriteString(a.Name)
	case ast.Number:
		buf.WriteString(strconv.FormatUint(a.Number, 10))
	case ast.String:
		q, err := strlit.Quote(a.Text)
		if err != nil {
			return fmt.Errorf("format: string at %s: %w", a.Span, err)
		}
		buf.WriteString(q)
	case ast.Batch, ast.Inline:
		return writeGroup(buf, a)
	default:
		return fmt.Errorf("format: unknown atom kind %v", a.Kind)
	}
	return nil
}

func writeGroup(buf *bytes.Buffer, a ast.Atom) error {
	open, closing, pad := "[", "]", ""
	if a.Kind == ast.Batch {
		open, closing, pad = "{", "}", " "
	}

	buf.WriteString(open)
	first := true
	for _, cmd := range a.Commands {
		if cmd.Empty() {
			continue
		}
		if first {
			buf.WriteString(pad)
		} else {
			buf.WriteString("; ")
		}
		first = false
		if err := writeCommand(buf, cmd); err != nil {
			return err
		}
	}
	if !first {
		buf.WriteString(pad)
	}
	buf.WriteString(closing)
	return nil
}

// Normalize returns a copy of a with empty commands removed from every
// group. A group left with no commands keeps a single empty one, which is
// what parsing "{}" produces. Spans are kept as they are.
func Normalize(a ast.Atom) ast.Atom {
	if !a.Kind.IsGroup() {
		return a
	}
	cmds := make([]ast.Command, 0, len(a.Commands))
	for _, cmd := range a.Commands {
		if cmd.Empty() {
			continue
		}
		atoms := make([]ast.Atom, len(cmd.Atoms))
		for i, child := range cmd.Atoms {
			atoms[i] = Normalize(child)
		}
		cmds = append(cmds, ast.Command{Atoms: atoms, Span: cmd.Span})
	}
	if len(cmds) == 0 {
		cmds = append(cmds, ast.Command{Span: a.Span})
	}
	a.Commands = cmds
	return a
}

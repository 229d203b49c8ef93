package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"

	"brace/internal/ast"
	"brace/internal/source"
)

// FormatASTPretty prints the AST as an indented outline.
func FormatASTPretty(w io.Writer, root ast.Atom, fs *source.FileSet) error {
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", atomLabel(root), formatSpan(root.Span, fs)); err != nil {
		return err
	}
	return formatCommandsPretty(w, root, fs, "")
}

func formatCommandsPretty(w io.Writer, group ast.Atom, fs *source.FileSet, prefix string) error {
	for i, cmd := range group.Commands {
		branch, next := branchPrefixes(prefix, i == len(group.Commands)-1)
		label := fmt.Sprintf("Command[%d]", i)
		if cmd.Empty() {
			label += " <empty>"
		}
		if _, err := fmt.Fprintf(w, "%s%s (span: %s)\n", branch, label, formatSpan(cmd.Span, fs)); err != nil {
			return err
		}
		for j, a := range cmd.Atoms {
			atomBranch, atomNext := branchPrefixes(next, j == len(cmd.Atoms)-1)
			if _, err := fmt.Fprintf(w, "%s%s (span: %s)\n", atomBranch, atomLabel(a), formatSpan(a.Span, fs)); err != nil {
				return err
			}
			if a.Kind.IsGroup() {
				if err := formatCommandsPretty(w, a, fs, atomNext); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func branchPrefixes(prefix string, last bool) (branch, next string) {
	if last {
		return prefix + "└─ ", prefix + "   "
	}
	return prefix + "├─ ", prefix + "│  "
}

func atomLabel(a ast.Atom) string {
	switch a.Kind {
	case ast.Identifier:
		return "Identifier " + a.Name
	case ast.Number:
		return "Number " + strconv.FormatUint(a.Number, 10)
	case ast.String:
		return "String " + strconv.Quote(a.Text)
	default:
		return a.Kind.String()
	}
}

// FormatASTJSON writes the AST as indented JSON.
func FormatASTJSON(w io.Writer, root ast.Atom) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

// FormatASTMsgpack writes the AST in msgpack form.
func FormatASTMsgpack(w io.Writer, root ast.Atom) error {
	return msgpack.NewEncoder(w).Encode(root)
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

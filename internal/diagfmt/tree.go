package diagfmt

import (
	"fmt"
	"io"

	"brace/internal/source"
	"brace/internal/token"
	"brace/internal/tree"
)

// FormatTreePretty prints the token tree, one node per line, indented by depth.
//
//	TopLevel (span: 1:1-2:1)
//	├─ Ident "echo" (span: 1:1-1:5)
//	└─ Batch (span: 1:6-1:12)
//	   └─ Integer "1" (span: 1:8-1:9)
func FormatTreePretty(w io.Writer, t tree.Tree, fs *source.FileSet) error {
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", treeLabel(t), formatSpan(t.Span, fs)); err != nil {
		return err
	}
	return formatTreeChildren(w, t, fs, "")
}

func formatTreeChildren(w io.Writer, t tree.Tree, fs *source.FileSet, prefix string) error {
	for i, child := range t.Children {
		branch, next := branchPrefixes(prefix, i == len(t.Children)-1)
		if _, err := fmt.Fprintf(w, "%s%s (span: %s)\n", branch, treeLabel(child), formatSpan(child.Span, fs)); err != nil {
			return err
		}
		if !child.Leaf {
			if err := formatTreeChildren(w, child, fs, next); err != nil {
				return err
			}
		}
	}
	return nil
}

func treeLabel(t tree.Tree) string {
	if !t.Leaf {
		return t.Group.String()
	}
	if t.Token.Kind == token.Semicolon {
		return t.Token.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Token.Describe(), t.Token.Text)
}

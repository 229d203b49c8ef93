package eval

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"brace/internal/ast"
	"brace/internal/format"
)

// Echo prints its arguments separated by single spaces, then a newline.
type Echo struct{}

func (Echo) Name() string { return "echo" }

func (Echo) Call(_ context.Context, fr *Frame, args []ast.Atom) error {
	var sb strings.Builder
	for i, a := range args {
		if i > 0 {
			sb.WriteByte(' ')
		}
		s, err := display(a)
		if err != nil {
			return err
		}
		sb.WriteString(s)
	}
	sb.WriteByte('\n')
	_, err := fmt.Fprint(fr.Out, sb.String())
	return err
}

// display renders an atom as echo shows it: strings raw, groups canonical.
func display(a ast.Atom) (string, error) {
	switch a.Kind {
	case ast.Identifier:
		return a.Name, nil
	case ast.Number:
		return strconv.FormatUint(a.Number, 10), nil
	case ast.String:
		return a.Text, nil
	default:
		return format.Inline(a)
	}
}

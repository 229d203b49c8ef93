package eval

import (
	"io"

	"brace/internal/ast"
)

// Frame is what a builtin sees of the command being run.
type Frame struct {
	Out     io.Writer
	Env     *Env
	Command ast.Command
	// Head is the identifier that selected the builtin.
	Head ast.Atom
}

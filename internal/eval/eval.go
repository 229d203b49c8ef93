package eval

import (
	"context"
	"errors"
	"io"

	"brace/internal/ast"
	"brace/internal/diag"
	"brace/internal/trace"
)

// Eval runs every command of root, a Batch, in order. Empty commands and
// commands that do not start with an identifier are skipped. The first
// error stops evaluation.
func Eval(ctx context.Context, env *Env, root ast.Atom, w io.Writer) error {
	if root.Kind != ast.Batch {
		panic("eval: root must be a Batch, got " + root.Kind.String())
	}
	for _, cmd := range root.Commands {
		if err := ctx.Err(); err != nil {
			return &Error{Code: diag.EvalCanceled, Span: cmd.Span, Err: err}
		}
		head, ok := cmd.Head()
		if !ok || head.Kind != ast.Identifier {
			continue
		}
		b, ok := env.Lookup(head.Name)
		if !ok {
			return &Error{Code: diag.EvalUnknownCommand, Span: head.Span, Name: head.Name, Err: ErrUnknownCommand}
		}

		trace.Mark(ctx, trace.ScopeCommand, head.Name, cmd.Span.String())
		fr := &Frame{Out: w, Env: env, Command: cmd, Head: head}
		if err := b.Call(ctx, fr, cmd.Args()); err != nil {
			var ee *Error
			if errors.As(err, &ee) {
				return err
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return &Error{Code: diag.EvalCanceled, Span: cmd.Span, Name: head.Name, Err: err}
			}
			return &Error{Code: diag.EvalBuiltinFailed, Span: cmd.Span, Name: head.Name, Err: err}
		}
	}
	return nil
}

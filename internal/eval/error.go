package eval

import (
	"errors"
	"fmt"

	"brace/internal/diag"
	"brace/internal/source"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBuiltinFailed  = errors.New("builtin failed")
	ErrCanceled       = errors.New("evaluation canceled")
)

// Error is a failure while running a program.
type Error struct {
	Code diag.Code
	Span source.Span
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message(), e.Span)
}

func (e *Error) Message() string {
	switch e.Code {
	case diag.EvalUnknownCommand:
		return fmt.Sprintf("unknown command '%s'", e.Name)
	case diag.EvalCanceled:
		return "evaluation canceled"
	default:
		return fmt.Sprintf("command '%s' failed: %v", e.Name, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the package sentinels by code.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnknownCommand:
		return e.Code == diag.EvalUnknownCommand
	case ErrBuiltinFailed:
		return e.Code == diag.EvalBuiltinFailed
	case ErrCanceled:
		return e.Code == diag.EvalCanceled
	}
	return false
}

func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Message())
}

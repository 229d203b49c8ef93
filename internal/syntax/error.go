// Package syntax holds the error type shared by the scanner-facing stages:
// the escape decoder, the tree builder and the parser. Every failure of
// those stages is a *Error carrying the span that triggered it.
package syntax

import (
	"fmt"

	"brace/internal/diag"
	"brace/internal/source"
	"brace/internal/token"
)

// ErrorKind classifies a syntax error.
type ErrorKind uint8

const (
	// UnexpectedDelimiter is a closing bracket with no matching opener.
	UnexpectedDelimiter ErrorKind = iota + 1
	// ExpectedDelimiter is an opening bracket never closed before EOF.
	ExpectedDelimiter
	// ReservedDelimiter is an opening parenthesis; paren groups have no meaning yet.
	ReservedDelimiter
	// UnclosedString is a string literal missing its closing quote.
	UnclosedString
	// InvalidEscapeSequence is a backslash followed by a rune outside the escape table.
	InvalidEscapeSequence
	// UnsupportedCharacter is a character the scanner could not classify.
	UnsupportedCharacter
	// IntegerOverflow is a digit run that does not fit in uint64.
	IntegerOverflow
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedDelimiter:
		return "UnexpectedDelimiter"
	case ExpectedDelimiter:
		return "ExpectedDelimiter"
	case ReservedDelimiter:
		return "ReservedDelimiter"
	case UnclosedString:
		return "UnclosedString"
	case InvalidEscapeSequence:
		return "InvalidEscapeSequence"
	case UnsupportedCharacter:
		return "UnsupportedCharacter"
	case IntegerOverflow:
		return "IntegerOverflow"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Error is a fatal syntax error. Bracket is set for the delimiter kinds,
// Char for UnsupportedCharacter and InvalidEscapeSequence.
type Error struct {
	Kind    ErrorKind
	Span    source.Span
	Bracket token.BracketKind
	Char    rune
}

// Sentinels for errors.Is; only Kind is compared.
var (
	ErrUnexpectedDelimiter   = &Error{Kind: UnexpectedDelimiter}
	ErrExpectedDelimiter     = &Error{Kind: ExpectedDelimiter}
	ErrReservedDelimiter     = &Error{Kind: ReservedDelimiter}
	ErrUnclosedString        = &Error{Kind: UnclosedString}
	ErrInvalidEscapeSequence = &Error{Kind: InvalidEscapeSequence}
	ErrUnsupportedCharacter  = &Error{Kind: UnsupportedCharacter}
	ErrIntegerOverflow       = &Error{Kind: IntegerOverflow}
)

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message(), e.Span)
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Message is the user-facing text without location.
func (e *Error) Message() string {
	switch e.Kind {
	case UnexpectedDelimiter:
		return fmt.Sprintf("unexpected closing delimiter '%c'", e.Bracket.CloseChar())
	case ExpectedDelimiter:
		return fmt.Sprintf("expected closing delimiter '%c'", e.Bracket.CloseChar())
	case ReservedDelimiter:
		return fmt.Sprintf("'%c' groups are reserved and cannot be used yet", e.Bracket.OpenChar())
	case UnclosedString:
		return "unclosed string literal"
	case InvalidEscapeSequence:
		return fmt.Sprintf("invalid escape sequence '\\%c'", e.Char)
	case UnsupportedCharacter:
		return fmt.Sprintf("unsupported character %q (U+%04X)", e.Char, e.Char)
	case IntegerOverflow:
		return "integer literal does not fit in 64 bits"
	}
	return "syntax error"
}

// Code maps the kind to its stable diagnostic code.
func (e *Error) Code() diag.Code {
	switch e.Kind {
	case UnexpectedDelimiter:
		return diag.SynUnexpectedDelimiter
	case ExpectedDelimiter:
		return diag.SynExpectedDelimiter
	case ReservedDelimiter:
		return diag.SynReservedDelimiter
	case UnclosedString:
		return diag.LexUnclosedString
	case InvalidEscapeSequence:
		return diag.LexInvalidEscape
	case UnsupportedCharacter:
		return diag.LexUnsupportedCharacter
	case IntegerOverflow:
		return diag.LexIntegerOverflow
	}
	return diag.UnknownCode
}

// Diagnostic converts the error into an error-severity diagnostic.
func (e *Error) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Code(), e.Span, e.Message())
	if e.Kind == ExpectedDelimiter {
		d = d.WithNote(e.Span, "unclosed delimiter opened here")
	}
	return d
}

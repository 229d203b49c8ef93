package syntax_test

import (
	"errors"
	"fmt"
	"testing"

	"brace/internal/diag"
	"brace/internal/source"
	"brace/internal/syntax"
	"brace/internal/token"
)

func TestErrorsIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("parse main.brc: %w", &syntax.Error{
		Kind:    syntax.ExpectedDelimiter,
		Span:    source.Span{Start: 3, End: 4},
		Bracket: token.Square,
	})

	if !errors.Is(err, syntax.ErrExpectedDelimiter) {
		t.Fatal("errors.Is must match by kind through wrapping")
	}
	if errors.Is(err, syntax.ErrUnexpectedDelimiter) {
		t.Fatal("errors.Is must not match another kind")
	}

	var se *syntax.Error
	if !errors.As(err, &se) || se.Span.Start != 3 {
		t.Fatalf("errors.As failed: %v", se)
	}
}

func TestMessagesAndCodes(t *testing.T) {
	tests := []struct {
		err  syntax.Error
		msg  string
		code diag.Code
	}{
		{syntax.Error{Kind: syntax.UnexpectedDelimiter, Bracket: token.Curly}, "unexpected closing delimiter '}'", diag.SynUnexpectedDelimiter},
		{syntax.Error{Kind: syntax.ExpectedDelimiter, Bracket: token.Square}, "expected closing delimiter ']'", diag.SynExpectedDelimiter},
		{syntax.Error{Kind: syntax.ReservedDelimiter, Bracket: token.Paren}, "'(' groups are reserved and cannot be used yet", diag.SynReservedDelimiter},
		{syntax.Error{Kind: syntax.UnclosedString}, "unclosed string literal", diag.LexUnclosedString},
		{syntax.Error{Kind: syntax.InvalidEscapeSequence, Char: 'q'}, `invalid escape sequence '\q'`, diag.LexInvalidEscape},
		{syntax.Error{Kind: syntax.UnsupportedCharacter, Char: '$'}, `unsupported character '$' (U+0024)`, diag.LexUnsupportedCharacter},
		{syntax.Error{Kind: syntax.IntegerOverflow}, "integer literal does not fit in 64 bits", diag.LexIntegerOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			if got := tt.err.Message(); got != tt.msg {
				t.Fatalf("Message: got %q, want %q", got, tt.msg)
			}
			d := tt.err.Diagnostic()
			if d.Code != tt.code || d.Severity != diag.SevError || d.Message != tt.msg {
				t.Fatalf("Diagnostic: got %+v", d)
			}
		})
	}
}

func TestExpectedDelimiterCarriesNote(t *testing.T) {
	e := &syntax.Error{Kind: syntax.ExpectedDelimiter, Span: source.Span{Start: 0, End: 1}, Bracket: token.Curly}
	d := e.Diagnostic()
	if len(d.Notes) != 1 || d.Notes[0].Span != e.Span {
		t.Fatalf("expected a note at the opener, got %+v", d.Notes)
	}
	if e.Error() != "expected closing delimiter '}' at 0:0-1" {
		t.Fatalf("Error: got %q", e.Error())
	}
}

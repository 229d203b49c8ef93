package token

import (
	"fmt"

	"brace/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind    Kind
	Bracket BracketKind // Open and Close only
	Char    rune        // Unknown only
	Span    source.Span
	Text    string
}

// IsTrivia reports whether the token carries no meaning for the tree builder.
func (t Token) IsTrivia() bool {
	return t.Kind == Whitespace || t.Kind == Comment
}

// Describe renders the kind together with its payload, e.g. "Open(Curly)".
func (t Token) Describe() string {
	switch t.Kind {
	case Open, Close:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Bracket)
	case Unknown:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Char)
	default:
		return t.Kind.String()
	}
}

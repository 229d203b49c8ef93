// Package strlit decodes and re-encodes brace string literals.
//
// The escape table is deliberately small: \n, \r, \t and \" are the only
// escapes, so a decoded string can never contain a backslash.
package strlit

import (
	"errors"
	"strings"
	"unicode/utf8"

	"brace/internal/syntax"
	"brace/internal/token"
)

// ErrUnquotable is returned by Quote for text no literal can express.
var ErrUnquotable = errors.New("strlit: text contains a backslash")

// Decode returns the value of a String token.
//
// A token that does not end in '"' is an UnclosedString at the token span.
// A backslash followed by a rune outside the table is an
// InvalidEscapeSequence at that rune's span. A backslash escaping the final
// quote leaves the literal unclosed; the error then spans from the
// backslash to the end of the token.
func Decode(tok token.Token) (string, error) {
	if tok.Kind != token.String {
		panic("strlit: Decode called on " + tok.Describe())
	}

	text := tok.Text
	if len(text) < 2 || text[len(text)-1] != '"' {
		return "", &syntax.Error{Kind: syntax.UnclosedString, Span: tok.Span}
	}

	body := text[1 : len(text)-1]
	if strings.IndexByte(body, '\\') < 0 {
		return body, nil
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			j := i + 1
			for j < len(body) && body[j] != '\\' {
				j++
			}
			sb.WriteString(body[i:j])
			i = j
			continue
		}

		// offsets below are relative to the token start; +1 skips the opening quote
		if i+1 >= len(body) {
			return "", &syntax.Error{
				Kind: syntax.UnclosedString,
				Span: tok.Span.At(offset(i+1), offset(len(text))),
			}
		}
		r, size := utf8.DecodeRuneInString(body[i+1:])
		switch r {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '"':
			sb.WriteByte('"')
		default:
			return "", &syntax.Error{
				Kind: syntax.InvalidEscapeSequence,
				Span: tok.Span.At(offset(i+2), offset(i+2+size)),
				Char: r,
			}
		}
		i += 1 + size
	}
	return sb.String(), nil
}

// Quote renders s as a literal that Decode maps back to s.
func Quote(s string) (string, error) {
	if strings.IndexByte(s, '\\') >= 0 {
		return "", ErrUnquotable
	}
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String(), nil
}

func offset(n int) uint32 {
	return uint32(n) // #nosec G115 -- bounded by the token length, which fits in uint32
}

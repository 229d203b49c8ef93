package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// EOF marks the end of the source input. It covers no text.
	EOF Kind = iota
	// Whitespace is a maximal run of Unicode white space.
	Whitespace
	// Comment runs from '#' up to, but not including, the next newline.
	Comment
	// Open is an opening bracket; Token.Bracket holds its kind.
	Open
	// Close is a closing bracket; Token.Bracket holds its kind.
	Close
	// Semicolon separates commands.
	Semicolon
	// Ident is a letter or '_' followed by letters, numbers and '_'.
	Ident
	// Integer is a maximal run of ASCII digits.
	Integer
	// String is a double-quoted literal, escapes not yet decoded.
	String
	// Unknown is a single character no other rule accepts; Token.Char holds it.
	Unknown
)

var kindNames = [...]string{
	EOF:        "EOF",
	Whitespace: "Whitespace",
	Comment:    "Comment",
	Open:       "Open",
	Close:      "Close",
	Semicolon:  "Semicolon",
	Ident:      "Ident",
	Integer:    "Integer",
	String:     "String",
	Unknown:    "Unknown",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// BracketKind distinguishes the three bracket pairs.
type BracketKind uint8

const (
	// Paren is '(' and ')'.
	Paren BracketKind = iota
	// Square is '[' and ']'.
	Square
	// Curly is '{' and '}'.
	Curly
)

func (b BracketKind) String() string {
	switch b {
	case Paren:
		return "Paren"
	case Square:
		return "Square"
	case Curly:
		return "Curly"
	default:
		return fmt.Sprintf("BracketKind(%d)", uint8(b))
	}
}

// OpenChar returns the opening character of the pair.
func (b BracketKind) OpenChar() byte {
	switch b {
	case Square:
		return '['
	case Curly:
		return '{'
	default:
		return '('
	}
}

// CloseChar returns the closing character of the pair.
func (b BracketKind) CloseChar() byte {
	switch b {
	case Square:
		return ']'
	case Curly:
		return '}'
	default:
		return ')'
	}
}

// LookupBracket classifies a bracket byte.
func LookupBracket(ch byte) (kind Kind, bracket BracketKind, ok bool) {
	switch ch {
	case '(':
		return Open, Paren, true
	case ')':
		return Close, Paren, true
	case '[':
		return Open, Square, true
	case ']':
		return Close, Square, true
	case '{':
		return Open, Curly, true
	case '}':
		return Close, Curly, true
	}
	return 0, 0, false
}

package lexer

import "brace/internal/token"

// scanString consumes a string literal from the opening quote up to and
// including the closing quote, or to EOF when there is none. A backslash
// always consumes the rune after it. Escapes are decoded later by strlit,
// which also reports literals that never closed.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		if lx.cursor.Eat('"') {
			return lx.tokenFrom(start, token.String)
		}
		if lx.cursor.Eat('\\') && lx.cursor.EOF() {
			break
		}
		lx.bumpRune()
	}
	return lx.tokenFrom(start, token.String)
}

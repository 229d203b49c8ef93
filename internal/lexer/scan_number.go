package lexer

import "brace/internal/token"

// scanInteger consumes a maximal run of ASCII digits. The value is not
// checked here; the parser reports digit runs that overflow uint64.
func (lx *Lexer) scanInteger() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.tokenFrom(start, token.Integer)
}

package lexer

import "brace/internal/token"

// scanWhitespace consumes a maximal run of Unicode white space.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		r, _ := lx.peekRune()
		if !isSpaceRune(r) {
			break
		}
		lx.bumpRune()
	}
	return lx.tokenFrom(start, token.Whitespace)
}

// scanComment consumes '#' and everything up to the next '\n'. The newline
// itself starts the following Whitespace token.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return lx.tokenFrom(start, token.Comment)
}

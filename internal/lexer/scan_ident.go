package lexer

import "brace/internal/token"

// scanIdent consumes an identifier: a letter or '_' followed by letters,
// numbers and '_'. Token.Text is the exact source slice.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}
	return lx.tokenFrom(start, token.Ident)
}

package lexer

import "brace/internal/token"

// scanPunct handles brackets, ';' and any single rune nothing else accepts.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()

	if kind, bracket, ok := token.LookupBracket(ch); ok {
		lx.cursor.Bump()
		tok := lx.tokenFrom(start, kind)
		tok.Bracket = bracket
		return tok
	}
	if ch == ';' {
		lx.cursor.Bump()
		return lx.tokenFrom(start, token.Semicolon)
	}

	r, _ := lx.peekRune()
	lx.bumpRune()
	tok := lx.tokenFrom(start, token.Unknown)
	tok.Char = r
	return tok
}

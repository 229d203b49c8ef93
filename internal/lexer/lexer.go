package lexer

import (
	"iter"

	"brace/internal/source"
	"brace/internal/token"
)

// Lexer splits one source file into tokens. It never fails: every byte of
// the input ends up in exactly one token.
type Lexer struct {
	file   *source.File
	cursor Cursor
	look   *token.Token // one-token lookahead buffer
}

func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
	}
}

// Next returns the next token. After the input is exhausted it keeps
// returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
		}
	}

	ch := lx.cursor.Peek()
	r, _ := lx.peekRune()

	switch {
	case isIdentStartRune(r):
		return lx.scanIdent()
	case isSpaceRune(r):
		return lx.scanWhitespace()
	case isDec(ch):
		return lx.scanInteger()
	case ch == '#':
		return lx.scanComment()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Reset rewinds the lexer to the start of the file.
func (lx *Lexer) Reset() {
	lx.cursor.Reset(0)
	lx.look = nil
}

// All yields the remaining tokens, EOF excluded.
func (lx *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF || !yield(tok) {
				return
			}
		}
	}
}

// Tokenize scans the whole file and returns every token, EOF excluded.
func Tokenize(file *source.File) []token.Token {
	lx := New(file)
	toks := make([]token.Token, 0, len(file.Content)/2+1)
	for tok := range lx.All() {
		toks = append(toks, tok)
	}
	return toks
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) tokenFrom(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

package lexer

import (
	"unicode"
	"unicode/utf8"
)

const utf8RuneSelf = utf8.RuneSelf

// peekRune decodes the rune at the cursor. An invalid byte decodes as
// (utf8.RuneError, 1).
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.cursor.Rest())
}

// bumpRune advances the cursor past the rune at the cursor.
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	lx.cursor.Advance(sz)
}

// ASCII fast paths; the rune variants handle the rest of Unicode.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}
func isIdentStartRune(r rune) bool {
	if r < utf8RuneSelf {
		return isIdentStartByte(byte(r))
	}
	return r != utf8.RuneError && unicode.IsLetter(r)
}
func isIdentContinueRune(r rune) bool {
	if r < utf8RuneSelf {
		return isIdentContinueByte(byte(r))
	}
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsNumber(r))
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
func isSpaceRune(r rune) bool {
	if r < utf8RuneSelf {
		return isSpaceByte(byte(r))
	}
	return unicode.IsSpace(r)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// IsIdentifier reports whether s scans as exactly one Ident token.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !isIdentStartRune(r) {
			return false
		}
		if !isIdentContinueRune(r) {
			return false
		}
	}
	return true
}

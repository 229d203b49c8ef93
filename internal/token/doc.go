// Package token defines the lexical tokens of brace source files.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace and comments are ordinary tokens; concatenating the Text of
//     every token up to EOF reproduces the file content byte for byte.
//   - EOF is the only kind with an empty span.
package token

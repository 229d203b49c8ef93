// Package fuzztests houses Go fuzz harnesses for the brace front end
// (source -> lexer -> tree -> parser -> format). They guard against panics,
// hangs and broken span invariants on arbitrary input.
//
// Seeds come from testdata/*.brc and from ```brace blocks in README.md.
package fuzztests

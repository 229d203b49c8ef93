// Package parser turns a token tree into an AST.
package parser

import (
	"errors"
	"fmt"
	"strconv"

	"brace/internal/ast"
	"brace/internal/source"
	"brace/internal/strlit"
	"brace/internal/syntax"
	"brace/internal/token"
	"brace/internal/tree"
)

// Parse converts tr into an atom. For the root of a file the result is a
// Batch. The first error stops parsing; no partial AST is returned.
func Parse(tr tree.Tree) (ast.Atom, error) {
	if tr.Leaf {
		return parseLeaf(tr.Token)
	}
	return parseGroup(tr)
}

// ParseFile runs the whole front end over f.
func ParseFile(f *source.File) (ast.Atom, error) {
	tr, err := tree.FromFile(f)
	if err != nil {
		return ast.Atom{}, err
	}
	return Parse(tr)
}

func parseGroup(tr tree.Tree) (ast.Atom, error) {
	kind := ast.Batch
	anchor := tr.Span.Start
	switch tr.Group {
	case tree.TopLevel:
	case tree.Batch:
		anchor++ // skip '{'
	case tree.Inline:
		kind = ast.Inline
		anchor++ // skip '['
	default:
		panic(fmt.Sprintf("parser: unexpected group kind %v", tr.Group))
	}

	cmds := make([]ast.Command, 0, 1)
	cur := ast.Command{Span: source.Span{File: tr.Span.File, Start: anchor, End: anchor}}

	for _, child := range tr.Children {
		if child.Leaf && child.Token.Kind == token.Semicolon {
			cmds = append(cmds, cur)
			end := child.Token.Span.End
			cur = ast.Command{Span: source.Span{File: tr.Span.File, Start: end, End: end}}
			continue
		}

		atom, err := Parse(child)
		if err != nil {
			return ast.Atom{}, err
		}
		cur.Atoms = append(cur.Atoms, atom)
		cur.Span = cur.Span.Cover(atom.Span)
	}
	cmds = append(cmds, cur)

	return ast.NewGroup(kind, cmds, tr.Span), nil
}

func parseLeaf(tok token.Token) (ast.Atom, error) {
	switch tok.Kind {
	case token.Ident:
		return ast.NewIdent(tok.Text, tok.Span), nil

	case token.Integer:
		n, err := strconv.ParseUint(tok.Text, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return ast.Atom{}, &syntax.Error{Kind: syntax.IntegerOverflow, Span: tok.Span}
			}
			panic(fmt.Sprintf("parser: malformed integer token %q: %v", tok.Text, err))
		}
		return ast.NewNumber(n, tok.Span), nil

	case token.String:
		text, err := strlit.Decode(tok)
		if err != nil {
			return ast.Atom{}, err
		}
		return ast.NewString(text, tok.Span), nil
	}

	// the tree builder rejects or consumes every other kind
	panic(fmt.Sprintf("parser: unsupported leaf %s at %s", tok.Describe(), tok.Span))
}

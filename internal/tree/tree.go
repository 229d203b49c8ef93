// Package tree groups a token stream into nested bracket groups.
//
// Build is a single forward pass over the tokens with an explicit stack of
// open frames, so nesting depth costs heap memory and never call depth.
// Trivia is dropped, but every token, trivia included, widens the root span.
package tree

import (
	"iter"

	"brace/internal/lexer"
	"brace/internal/source"
	"brace/internal/syntax"
	"brace/internal/token"
)

// GroupKind is the role of a bracketed region.
type GroupKind uint8

const (
	// TopLevel is the implicit group around the whole file.
	TopLevel GroupKind = iota
	// Batch comes from '{ ... }'.
	Batch
	// Inline comes from '[ ... ]'.
	Inline
)

func (k GroupKind) String() string {
	switch k {
	case TopLevel:
		return "TopLevel"
	case Batch:
		return "Batch"
	case Inline:
		return "Inline"
	}
	return "GroupKind(?)"
}

// Bracket returns the bracket kind that delimits groups of kind k.
// TopLevel has no brackets; asking for them is a programming error.
func (k GroupKind) Bracket() token.BracketKind {
	switch k {
	case Batch:
		return token.Curly
	case Inline:
		return token.Square
	}
	panic("tree: " + k.String() + " has no bracket")
}

// groupFor maps an opening bracket to its group kind. Paren has none.
func groupFor(b token.BracketKind) (GroupKind, bool) {
	switch b {
	case token.Curly:
		return Batch, true
	case token.Square:
		return Inline, true
	}
	return 0, false
}

// Tree is either a leaf holding one token or a group of child trees.
type Tree struct {
	Span     source.Span
	Leaf     bool
	Token    token.Token // leaves only
	Group    GroupKind   // groups only
	Children []Tree      // groups only
}

type frame struct {
	kind     GroupKind
	open     source.Span
	children []Tree
}

// Build groups toks into a TopLevel tree. file is the file the tokens come
// from; it only matters for the span of an empty input.
func Build(file source.FileID, toks iter.Seq[token.Token]) (Tree, error) {
	root := source.Span{File: file}
	stack := []frame{{kind: TopLevel, open: root}}

	for tok := range toks {
		if tok.Kind == token.EOF {
			break
		}
		root = root.Cover(tok.Span)

		switch tok.Kind {
		case token.Whitespace, token.Comment:
			continue

		case token.Open:
			kind, ok := groupFor(tok.Bracket)
			if !ok {
				return Tree{}, &syntax.Error{Kind: syntax.ReservedDelimiter, Span: tok.Span, Bracket: tok.Bracket}
			}
			stack = append(stack, frame{kind: kind, open: tok.Span})

		case token.Close:
			top := stack[len(stack)-1]
			if top.kind == TopLevel {
				return Tree{}, &syntax.Error{Kind: syntax.UnexpectedDelimiter, Span: root, Bracket: tok.Bracket}
			}
			span := top.open.Cover(tok.Span)
			if top.kind.Bracket() != tok.Bracket {
				return Tree{}, &syntax.Error{Kind: syntax.UnexpectedDelimiter, Span: span, Bracket: tok.Bracket}
			}
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.children = append(parent.children, Tree{Span: span, Group: top.kind, Children: top.children})

		case token.Unknown:
			return Tree{}, &syntax.Error{Kind: syntax.UnsupportedCharacter, Span: tok.Span, Char: tok.Char}

		default:
			top := &stack[len(stack)-1]
			top.children = append(top.children, Tree{Span: tok.Span, Leaf: true, Token: tok})
		}
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1]
		return Tree{}, &syntax.Error{Kind: syntax.ExpectedDelimiter, Span: open.open, Bracket: open.kind.Bracket()}
	}
	return Tree{Span: root, Group: TopLevel, Children: stack[0].children}, nil
}

// FromFile scans f and groups its tokens.
func FromFile(f *source.File) (Tree, error) {
	return Build(f.ID, lexer.New(f).All())
}

// Depth returns the deepest group nesting below t; a leaf has depth 0.
func (t Tree) Depth() int {
	if t.Leaf {
		return 0
	}
	depth := 0
	for _, c := range t.Children {
		if !c.Leaf {
			depth = max(depth, c.Depth()+1)
		}
	}
	return depth
}

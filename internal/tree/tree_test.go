package tree_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brace/internal/source"
	"brace/internal/syntax"
	"brace/internal/token"
	"brace/internal/tree"
)

func build(t *testing.T, input string) (tree.Tree, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.brc", []byte(input))
	return tree.FromFile(fs.Get(id))
}

// shape renders groups as brackets and leaves by their text, e.g. "{a [b]}".
func shape(tr tree.Tree) string {
	if tr.Leaf {
		return tr.Token.Text
	}
	parts := make([]string, len(tr.Children))
	for i, c := range tr.Children {
		parts[i] = shape(c)
	}
	body := strings.Join(parts, " ")
	switch tr.Group {
	case tree.Batch:
		return "{" + body + "}"
	case tree.Inline:
		return "[" + body + "]"
	default:
		return body
	}
}

func TestBuildNesting(t *testing.T) {
	tests := []struct {
		input string
		shape string
		depth int
	}{
		{"", "", 0},
		{"echo hi", "echo hi", 0},
		{"a; b", "a ; b", 0},
		{"{}", "{}", 1},
		{"[x [y {z}]]", "[x [y {z}]]", 3},
		{"# only a comment\n", "", 0},
		{"a {b; c} [d] ; e", "a {b ; c} [d] ; e", 1},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root, err := build(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tree.TopLevel, root.Group)
			assert.False(t, root.Leaf)
			assert.Equal(t, tt.shape, shape(root))
			assert.Equal(t, tt.depth, root.Depth())
		})
	}
}

func TestRootSpanCoversTrivia(t *testing.T) {
	input := "  echo  # trailing"
	root, err := build(t, input)
	require.NoError(t, err)
	assert.Equal(t, source.Span{Start: 0, End: uint32(len(input))}, root.Span)

	empty, err := build(t, "")
	require.NoError(t, err)
	assert.True(t, empty.Span.Empty())
	assert.Empty(t, empty.Children)
}

func TestGroupSpans(t *testing.T) {
	root, err := build(t, "a {b [c]}")
	require.NoError(t, err)
	require.Len(t, root.Children, 2)

	batch := root.Children[1]
	assert.Equal(t, tree.Batch, batch.Group)
	assert.Equal(t, source.Span{Start: 2, End: 9}, batch.Span)

	inline := batch.Children[1]
	assert.Equal(t, tree.Inline, inline.Group)
	assert.Equal(t, source.Span{Start: 5, End: 8}, inline.Span)

	leaf := inline.Children[0]
	assert.True(t, leaf.Leaf)
	assert.Equal(t, token.Ident, leaf.Token.Kind)
	assert.Equal(t, leaf.Token.Span, leaf.Span)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    *syntax.Error
		span    source.Span
		bracket token.BracketKind
	}{
		{"unclosed square", "[1 2", syntax.ErrExpectedDelimiter, source.Span{Start: 0, End: 1}, token.Square},
		{"innermost unclosed wins", "{ [ x", syntax.ErrExpectedDelimiter, source.Span{Start: 2, End: 3}, token.Square},
		{"mismatched close", "{a]", syntax.ErrUnexpectedDelimiter, source.Span{Start: 0, End: 3}, token.Square},
		{"stray close", "a }", syntax.ErrUnexpectedDelimiter, source.Span{Start: 0, End: 3}, token.Curly},
		{"paren reserved", "(x)", syntax.ErrReservedDelimiter, source.Span{Start: 0, End: 1}, token.Paren},
		{"stray paren close", "x )", syntax.ErrUnexpectedDelimiter, source.Span{Start: 0, End: 3}, token.Paren},
		{"unknown char", "echo $", syntax.ErrUnsupportedCharacter, source.Span{Start: 5, End: 6}, token.Paren},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := build(t, tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)

			var se *syntax.Error
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.span, se.Span)
			assert.Equal(t, tt.bracket, se.Bracket)
		})
	}
}

func TestUnknownCarriesChar(t *testing.T) {
	_, err := build(t, "a € b")
	var se *syntax.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, '€', se.Char)
}

func TestDeepNestingDoesNotRecurse(t *testing.T) {
	const depth = 100000
	input := strings.Repeat("[", depth) + strings.Repeat("]", depth)
	root, err := build(t, input)
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
}

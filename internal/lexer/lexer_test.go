package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"brace/internal/lexer"
	"brace/internal/source"
	"brace/internal/token"
)

// makeTestLexer creates a lexer over an in-memory file.
func makeTestLexer(input string) *lexer.Lexer {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.brc", []byte(input))
	return lexer.New(fs.Get(fileID))
}

func tokenize(input string) []token.Token {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.brc", []byte(input))
	return lexer.Tokenize(fs.Get(fileID))
}

// expectTokens checks the token kinds produced for input, EOF excluded.
func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	tokens := tokenize(input)

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v",
			len(expected), len(tokens), input, tokensToString(tokens))
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
}

// expectSingleToken checks that input starts with a token of the given kind and text.
func expectSingleToken(t *testing.T, input string, expectedKind token.Kind, expectedText string) token.Token {
	t.Helper()
	tok := makeTestLexer(input).Next()

	if tok.Kind != expectedKind {
		t.Errorf("Expected kind %v, got %v", expectedKind, tok.Kind)
	}
	if tok.Text != expectedText {
		t.Errorf("Expected text %q, got %q", expectedText, tok.Text)
	}
	return tok
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%s(%q)", tok.Describe(), tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"foo", "foo"},
		{"_bar", "_bar"},
		{"_", "_"},
		{"x123", "x123"},
		{"a_b_c;", "a_b_c"},
		{"привет мир", "привет"},
		{"日本語", "日本語"},
		{"x²", "x²"},   // superscript two is a Unicode number
		{"ab٣", "ab٣"}, // Arabic-Indic digit
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, token.Ident, tt.text)
		})
	}
}

func TestIntegers(t *testing.T) {
	expectSingleToken(t, "0", token.Integer, "0")
	expectSingleToken(t, "12345;", token.Integer, "12345")
	expectSingleToken(t, "99999999999999999999999", token.Integer, "99999999999999999999999")
	// digits glued to letters split: the number comes first
	expectTokens(t, "12ab", []token.Kind{token.Integer, token.Ident})
	// identifiers keep their trailing digits
	expectTokens(t, "ab12", []token.Kind{token.Ident})
}

func TestWhitespace(t *testing.T) {
	expectSingleToken(t, " \t\n\r x", token.Whitespace, " \t\n\r ")
	expectSingleToken(t, "  x", token.Whitespace, "  ")
	expectTokens(t, "a  b", []token.Kind{token.Ident, token.Whitespace, token.Ident})
}

func TestComments(t *testing.T) {
	expectSingleToken(t, "# hello\necho", token.Comment, "# hello")
	expectSingleToken(t, "#", token.Comment, "#")
	expectTokens(t, "echo # tail", []token.Kind{token.Ident, token.Whitespace, token.Comment})
	expectTokens(t, "# one\n# two", []token.Kind{token.Comment, token.Whitespace, token.Comment})
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		text  string
	}{
		{"simple", `"abc" x`, `"abc"`},
		{"empty", `""`, `""`},
		{"escaped quote", `"a\"b" x`, `"a\"b"`},
		{"escaped backslash", `"a\\" x`, `"a\\"`},
		{"unclosed", `"abc`, `"abc`},
		{"lone quote", `"`, `"`},
		{"trailing backslash", `"abc\`, `"abc\`},
		{"escaped quote at eof", `"abc\"`, `"abc\"`},
		{"multiline", "\"a\nb\"", "\"a\nb\""},
		{"escaped multibyte", `"\é"`, `"\é"`},
		{"comment marker inside", `"# no"`, `"# no"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectSingleToken(t, tt.input, token.String, tt.text)
		})
	}
}

func TestBracketsAndSemicolon(t *testing.T) {
	tokens := tokenize("{[()]};")
	want := []string{"Open(Curly)", "Open(Square)", "Open(Paren)", "Close(Paren)", "Close(Square)", "Close(Curly)", "Semicolon"}
	if len(tokens) != len(want) {
		t.Fatalf("got %s", tokensToString(tokens))
	}
	for i, tok := range tokens {
		if tok.Describe() != want[i] {
			t.Errorf("token %d: got %s, want %s", i, tok.Describe(), want[i])
		}
	}
}

func TestUnknown(t *testing.T) {
	tok := expectSingleToken(t, "$x", token.Unknown, "$")
	if tok.Char != '$' {
		t.Fatalf("Char: got %q", tok.Char)
	}

	tok = expectSingleToken(t, "€", token.Unknown, "€")
	if tok.Char != '€' || tok.Span.Len() != 3 {
		t.Fatalf("multi-byte unknown: got %q len %d", tok.Char, tok.Span.Len())
	}

	// an invalid UTF-8 byte is one byte wide
	tok = expectSingleToken(t, "\xffa", token.Unknown, "\xff")
	if tok.Char != '�' || tok.Span.Len() != 1 {
		t.Fatalf("invalid byte: got %q len %d", tok.Char, tok.Span.Len())
	}
}

func TestSpansAreContiguous(t *testing.T) {
	input := "echo \"hi\\n\" [x; 1]\n# c\n{ $ }\xff"
	tokens := tokenize(input)

	var off uint32
	var sb strings.Builder
	for _, tok := range tokens {
		if tok.Span.Start != off {
			t.Fatalf("gap before %s at %d, expected %d", tok.Describe(), tok.Span.Start, off)
		}
		if tok.Text != input[tok.Span.Start:tok.Span.End] {
			t.Fatalf("text %q does not match span %v", tok.Text, tok.Span)
		}
		off = tok.Span.End
		sb.WriteString(tok.Text)
	}
	if sb.String() != input {
		t.Fatalf("concatenation mismatch:\n got %q\nwant %q", sb.String(), input)
	}
}

func TestTokensRescanToThemselves(t *testing.T) {
	input := "echo \"a\\\"b\" 42 [x] ; # tail\n\t∂ foo_1"
	for _, tok := range tokenize(input) {
		again := tokenize(tok.Text)
		if len(again) != 1 || again[0].Kind != tok.Kind || again[0].Text != tok.Text {
			t.Fatalf("%s(%q) rescanned as %s", tok.Describe(), tok.Text, tokensToString(again))
		}
	}
}

func TestEOFRepeats(t *testing.T) {
	lx := makeTestLexer("x")
	if tok := lx.Next(); tok.Kind != token.Ident {
		t.Fatalf("expected ident, got %v", tok.Kind)
	}
	for range 3 {
		tok := lx.Next()
		if tok.Kind != token.EOF || !tok.Span.Empty() || tok.Span.Start != 1 {
			t.Fatalf("expected empty EOF at 1, got %v %v", tok.Kind, tok.Span)
		}
	}

	if tok := makeTestLexer("").Next(); tok.Kind != token.EOF {
		t.Fatalf("empty input: got %v", tok.Kind)
	}
}

func TestPeekAndReset(t *testing.T) {
	lx := makeTestLexer("a;b")

	peeked := lx.Peek()
	if again := lx.Peek(); again != peeked {
		t.Fatalf("Peek must be idempotent: %v vs %v", peeked, again)
	}
	if next := lx.Next(); next != peeked {
		t.Fatalf("Next after Peek: got %v, want %v", next, peeked)
	}
	if next := lx.Next(); next.Kind != token.Semicolon {
		t.Fatalf("expected semicolon, got %v", next.Kind)
	}

	lx.Reset()
	if next := lx.Next(); next.Text != "a" {
		t.Fatalf("after Reset: got %q", next.Text)
	}
}

func TestAllStopsEarly(t *testing.T) {
	lx := makeTestLexer("a b c")
	count := 0
	for range lx.All() {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("got %d", count)
	}
	if next := lx.Next(); next.Text != "b" {
		t.Fatalf("iteration must resume after the last yielded token, got %q", next.Text)
	}
}

func TestIsIdentifier(t *testing.T) {
	for _, s := range []string{"echo", "_", "a1", "привет", "x²"} {
		if !lexer.IsIdentifier(s) {
			t.Errorf("%q should be an identifier", s)
		}
	}
	for _, s := range []string{"", "1a", "a-b", "a b", "\xff", "²x"} {
		if lexer.IsIdentifier(s) {
			t.Errorf("%q must NOT be an identifier", s)
		}
	}
}

package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"brace/internal/ast"
	"brace/internal/lexer"
	"brace/internal/parser"
	"brace/internal/source"
	"brace/internal/tree"
)

func load(t *testing.T, src string) (*source.FileSet, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	return fs, fs.Get(fs.AddVirtual("dump.brc", []byte(src)))
}

func TestFormatTokensPretty(t *testing.T) {
	fs, f := load(t, "echo {1};")
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, lexer.Tokenize(f), fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 tokens, got:\n%s", buf.String())
	}
	if !strings.Contains(lines[0], `Ident`) || !strings.Contains(lines[0], `"echo" at 1:1-1:5`) {
		t.Errorf("line 1 = %q", lines[0])
	}
	if !strings.Contains(lines[2], "Open(Curly)") {
		t.Errorf("line 3 = %q", lines[2])
	}
}

func TestFormatTokensJSON(t *testing.T) {
	_, f := load(t, "[x]")
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, lexer.Tokenize(f)); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[0].Bracket != "Square" || out[1].Bracket != "" || out[1].Text != "x" {
		t.Errorf("unexpected tokens %+v", out)
	}
}

func TestFormatTreePretty(t *testing.T) {
	fs, f := load(t, "echo {1};")
	tr, err := tree.FromFile(f)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, tr, fs); err != nil {
		t.Fatal(err)
	}
	want := "TopLevel (span: 1:1-1:10)\n" +
		"├─ Ident \"echo\" (span: 1:1-1:5)\n" +
		"├─ Batch (span: 1:6-1:9)\n" +
		"│  └─ Integer \"1\" (span: 1:7-1:8)\n" +
		"└─ Semicolon (span: 1:9-1:10)\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatASTPretty(t *testing.T) {
	fs, f := load(t, `echo "hi" [x];`)
	root, err := parser.ParseFile(f)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, root, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Batch (span: 1:1-1:15)\n",
		"├─ Command[0] (span: 1:1-1:14)\n",
		"│  ├─ Identifier echo (span: 1:1-1:5)\n",
		"│  ├─ String \"hi\" (span: 1:6-1:10)\n",
		"│  └─ Inline (span: 1:11-1:14)\n",
		"│     └─ Command[0] (span: 1:12-1:13)\n",
		"│        └─ Identifier x (span: 1:12-1:13)\n",
		"└─ Command[1] <empty>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatASTTree(t *testing.T) {
	_, f := load(t, "a [b]")
	root, err := parser.ParseFile(f)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatASTTree(&buf, root); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"{}", "cmd", "a", "[]", "b"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "/") && !strings.Contains(out, "|") {
		t.Errorf("expected connectors in:\n%s", out)
	}
}

func TestFormatASTEncodings(t *testing.T) {
	_, f := load(t, `echo 42 "s" {x};`)
	root, err := parser.ParseFile(f)
	if err != nil {
		t.Fatal(err)
	}

	var js bytes.Buffer
	if err := FormatASTJSON(&js, root); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(js.String(), `"kind": "Batch"`) {
		t.Errorf("json kinds should be names:\n%s", js.String())
	}
	var fromJSON ast.Atom
	if err := json.Unmarshal(js.Bytes(), &fromJSON); err != nil {
		t.Fatal(err)
	}

	var mp bytes.Buffer
	if err := FormatASTMsgpack(&mp, root); err != nil {
		t.Fatal(err)
	}
	var fromMsgpack ast.Atom
	if err := msgpack.Unmarshal(mp.Bytes(), &fromMsgpack); err != nil {
		t.Fatal(err)
	}

	for name, got := range map[string]ast.Atom{"json": fromJSON, "msgpack": fromMsgpack} {
		if !ast.SameShape(root, got) {
			t.Errorf("%s decode lost structure", name)
		}
		if got.Span != root.Span {
			t.Errorf("%s decode lost span: %v vs %v", name, got.Span, root.Span)
		}
	}
}

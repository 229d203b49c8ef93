package testkit

import (
	"testing"

	"brace/internal/ast"
	"brace/internal/lexer"
	"brace/internal/parser"
	"brace/internal/source"
)

func TestCheckSpanInvariantsOnParsedInput(t *testing.T) {
	inputs := []string{
		"",
		"echo hi",
		"a;b;;c;",
		"{}",
		"set x [add 1 [mul 2 3]]; { echo \"a\\tb\"; [x] }",
		"# comment\n  echo   spaced   out  \n",
	}
	for _, input := range inputs {
		fs := source.NewFileSet()
		f := fs.Get(fs.AddVirtual("test.brc", []byte(input)))

		if err := CheckTokenCoverage(lexer.Tokenize(f), f.Content); err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		root, err := parser.ParseFile(f)
		if err != nil {
			t.Fatalf("%q: parse: %v", input, err)
		}
		if err := CheckSpanInvariants(root, f); err != nil {
			t.Fatalf("%q: %v", input, err)
		}
	}
}

func TestCheckSpanInvariantsRejectsBrokenTree(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.brc", []byte("a b")))
	root, err := parser.ParseFile(f)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	root.Commands[0].Atoms[1].Span = source.Span{Start: 0, End: 1}
	if err := CheckSpanInvariants(root, f); err == nil {
		t.Fatal("expected overlap to be reported")
	}

	if err := CheckSpanInvariants(ast.NewIdent("x", root.Span), f); err == nil {
		t.Fatal("expected non-batch root to be rejected")
	}
}

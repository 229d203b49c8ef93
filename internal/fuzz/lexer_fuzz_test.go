package fuzztests

import (
	"testing"

	"brace/internal/lexer"
	"brace/internal/source"
	"brace/internal/testkit"
	"brace/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.brc", input))

		toks := lexer.Tokenize(file)
		if err := testkit.CheckTokenCoverage(toks, file.Content); err != nil {
			t.Fatalf("coverage: %v\ninput: %q", err, input)
		}

		// every token rescans to itself
		for _, tok := range toks {
			again := lexer.Tokenize(fs.Get(fs.AddVirtual("tok.brc", []byte(tok.Text))))
			if len(again) != 1 || again[0].Kind != tok.Kind {
				t.Fatalf("token %s(%q) rescanned into %d tokens", tok.Describe(), tok.Text, len(again))
			}
		}

		lx := lexer.New(file)
		for range lx.All() {
		}
		if lx.Next().Kind != token.EOF {
			t.Fatal("EOF must repeat after exhaustion")
		}
	})
}

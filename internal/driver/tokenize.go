package driver

import (
	"strings"

	"brace/internal/diag"
	"brace/internal/lexer"
	"brace/internal/source"
	"brace/internal/syntax"
	"brace/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize scans the file at path. Scanning never fails; tokens the later
// stages would reject are reported to the bag so dumps can show them.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := ParseOptions{MaxDiagnostics: maxDiagnostics}.newBag()
	tokens := lexer.Tokenize(file)
	reportSuspiciousTokens(diag.BagReporter{Bag: bag}, tokens)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

func reportSuspiciousTokens(r diag.Reporter, tokens []token.Token) {
	for _, tok := range tokens {
		switch {
		case tok.Kind == token.Unknown:
			reportFailure(r, &syntax.Error{Kind: syntax.UnsupportedCharacter, Span: tok.Span, Char: tok.Char})
		case tok.Kind == token.String && (len(tok.Text) < 2 || !strings.HasSuffix(tok.Text, `"`)):
			reportFailure(r, &syntax.Error{Kind: syntax.UnclosedString, Span: tok.Span})
		}
	}
}

package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"brace/internal/source"
	"brace/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Bracket string      `json:"bracket,omitempty"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
}

// FormatTokensPretty prints one token per line with its line/column range.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-15s %q at %d:%d-%d:%d\n",
			i+1, tok.Describe(), tok.Text,
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col); err != nil {
			return err
		}

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the tokens as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))

	for _, tok := range tokens {
		out := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: tok.Span,
		}
		if tok.Kind == token.Open || tok.Kind == token.Close {
			out.Bracket = tok.Bracket.String()
		}
		output = append(output, out)

		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

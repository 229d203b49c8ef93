package driver

import (
	"brace/internal/ast"
	"brace/internal/format"
	"brace/internal/parser"
	"brace/internal/source"
)

// RunFmtCheck parses sf, formats it, re-parses the output and verifies
// that both trees have the same shape once empty commands are dropped.
// 'ok' means the round trip preserved the program.
func RunFmtCheck(sf *source.File) (success bool, msg string) {
	first, err := parser.ParseFile(sf)
	if err != nil {
		return false, "fmt-check: initial parse failed: " + err.Error()
	}

	out, err := format.Atom(first)
	if err != nil {
		return false, "fmt-check: format failed: " + err.Error()
	}

	fs2 := source.NewFileSet()
	f2 := fs2.Get(fs2.AddVirtual(sf.Path, out))
	second, err := parser.ParseFile(f2)
	if err != nil {
		return false, "fmt-check: reparse failed: " + err.Error()
	}

	if !ast.SameShape(format.Normalize(first), format.Normalize(second)) {
		return false, "fmt-check: structure differs after round-trip"
	}

	return true, "fmt-check: OK"
}

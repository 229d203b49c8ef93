package driver

import (
	"slices"

	"brace/internal/diag"
	"brace/internal/lexer"
	"brace/internal/source"
	"brace/internal/tree"
)

type TreeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    tree.Tree
	Bag     *diag.Bag
}

// BuildTree scans and groups the file at path. On a syntax error Tree is
// the zero value and Bag holds one error.
func BuildTree(path string, maxDiagnostics int) (*TreeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := ParseOptions{MaxDiagnostics: maxDiagnostics}.newBag()

	tr, err := tree.Build(file.ID, slices.Values(lexer.Tokenize(file)))
	if err != nil {
		reportFailure(diag.BagReporter{Bag: bag}, err)
		tr = tree.Tree{}
	}
	return &TreeResult{FileSet: fs, File: file, Tree: tr, Bag: bag}, nil
}

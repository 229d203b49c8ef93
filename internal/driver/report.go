package driver

import (
	"errors"
	"fmt"

	"brace/internal/diag"
	"brace/internal/eval"
	"brace/internal/source"
	"brace/internal/syntax"
)

// reportFailure turns a pipeline error into exactly one error diagnostic.
// Errors that are not pipeline errors are implementation faults.
func reportFailure(r diag.Reporter, err error) {
	var d diag.Diagnostic
	var se *syntax.Error
	var ee *eval.Error
	switch {
	case errors.As(err, &se):
		d = se.Diagnostic()
	case errors.As(err, &ee):
		d = ee.Diagnostic()
	default:
		panic(fmt.Sprintf("driver: unexpected pipeline error %T: %v", err, err))
	}
	r.Report(d)
}

// reportLoadFailure records an I/O error against a placeholder file so the
// diagnostic still has a path to print.
func reportLoadFailure(r diag.Reporter, fs *source.FileSet, path string, err error) source.FileID {
	id := fs.AddVirtual(path, nil)
	diag.Error(r, diag.IOLoadFileError, source.Span{File: id}, err.Error())
	return id
}

package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"brace/internal/diag"
	"brace/internal/format"
	"brace/internal/lexer"
	"brace/internal/source"
	"brace/internal/token"
)

// ErrCommentsPresent is returned when writing would drop comments.
var ErrCommentsPresent = errors.New("file contains comments, which fmt would drop")

// FormatOptions configures code formatting.
type FormatOptions struct {
	Check          bool // report only, never write
	Stdout         bool // return the output instead of writing
	MaxDiagnostics int
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
	// FileSet and Bag are set when the file failed to parse.
	FileSet *source.FileSet
	Bag     *diag.Bag
}

// FormatPaths formats files or directories (recursively collecting .brc files).
// With opts.Check files are not modified and Changed tells whether they
// would be. With opts.Stdout the output is returned in Formatted.
// Files holding comments are never rewritten in place.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := collectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := formatSingleFile(ctx, path, opts)
		if result.Err != nil || opts.Check || opts.Stdout || !result.Changed {
			results = append(results, result)
			continue
		}

		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, result.Formatted, mode.Perm()); err != nil {
			result.Err = err
		}
		result.Formatted = nil
		results = append(results, result)
	}

	return results, nil
}

func formatSingleFile(ctx context.Context, path string, opts FormatOptions) FormatResult {
	result := FormatResult{Path: path}
	res, err := Parse(ctx, path, ParseOptions{MaxDiagnostics: opts.MaxDiagnostics})
	if err != nil {
		result.Err = err
		return result
	}
	if !res.OK() {
		result.Err = fmt.Errorf("format: %s has syntax errors", path)
		result.FileSet, result.Bag = res.FileSet, res.Bag
		return result
	}

	formatted, err := format.Atom(res.Root)
	if err != nil {
		result.Err = err
		return result
	}
	result.Changed = !bytes.Equal(res.File.Content, formatted)
	result.Formatted = formatted

	if result.Changed && !opts.Check && !opts.Stdout && hasComments(res.File) {
		result.Err = fmt.Errorf("%s: %w", path, ErrCommentsPresent)
	}
	return result
}

func hasComments(f *source.File) bool {
	for tok := range lexer.New(f).All() {
		if tok.Kind == token.Comment {
			return true
		}
	}
	return false
}

func collectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if filepath.Ext(path) == SourceExt {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		// explicit files are formatted whatever their extension
		addFile(p)
	}

	sort.Strings(files)
	return files, nil
}

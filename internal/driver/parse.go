package driver

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"brace/internal/ast"
	"brace/internal/diag"
	"brace/internal/lexer"
	"brace/internal/parser"
	"brace/internal/source"
	"brace/internal/token"
	"brace/internal/trace"
	"brace/internal/tree"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Root    ast.Atom // zero when Bag has errors
	Bag     *diag.Bag
	Cached  bool
}

// OK reports whether the file parsed without errors.
func (r *ParseResult) OK() bool {
	return r != nil && !r.Bag.HasErrors()
}

// Parse runs scan, tree and parse over the file at path. Only I/O errors
// are returned; syntax errors end up in the result's Bag.
func Parse(ctx context.Context, path string, opts ParseOptions) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return parseLoaded(ctx, fs, fs.Get(fileID), opts), nil
}

// ParseSource parses in-memory content registered under name.
func ParseSource(ctx context.Context, name string, content []byte, opts ParseOptions) *ParseResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return parseLoaded(ctx, fs, fs.Get(fileID), opts)
}

func parseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, opts ParseOptions) *ParseResult {
	bag := opts.newBag()
	root, cached, err := parseFile(ctx, file, opts, bag)
	res := &ParseResult{FileSet: fs, File: file, Bag: bag, Cached: cached}
	if err != nil {
		reportFailure(diag.BagReporter{Bag: bag}, err)
		return res
	}
	res.Root = root
	return res
}

// parseFile is the single-file pipeline shared by Parse and ParseDir.
// Cache problems are reported as warnings and never fail the parse.
func parseFile(ctx context.Context, file *source.File, opts ParseOptions, bag *diag.Bag) (ast.Atom, bool, error) {
	// load and store failures often share one cause
	cacheReporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	if opts.Cache != nil {
		root, ok, err := opts.Cache.LoadAST(file)
		if err != nil {
			diag.Warn(cacheReporter, diag.IOCacheError, source.Span{File: file.ID}, err.Error())
		}
		if ok {
			trace.Mark(ctx, trace.ScopePass, "cache-hit", file.Path)
			return root, true, nil
		}
	}

	var (
		toks []token.Token
		tr   tree.Tree
		root ast.Atom
	)

	_, scan := trace.Start(ctx, trace.ScopePass, "scan")
	_ = track(opts.Timer, "scan", func() error {
		toks = lexer.Tokenize(file)
		return nil
	})
	scan.With("tokens", strconv.Itoa(len(toks))).End("")

	_, treeSpan := trace.Start(ctx, trace.ScopePass, "tree")
	err := track(opts.Timer, "tree", func() error {
		var err error
		tr, err = tree.Build(file.ID, slices.Values(toks))
		return err
	})
	treeSpan.End(errDetail(err))
	if err != nil {
		return ast.Atom{}, false, err
	}

	_, parseSpan := trace.Start(ctx, trace.ScopePass, "parse")
	err = track(opts.Timer, "parse", func() error {
		var err error
		root, err = parser.Parse(tr)
		return err
	})
	parseSpan.End(errDetail(err))
	if err != nil {
		return ast.Atom{}, false, err
	}

	if opts.Cache != nil {
		if err := opts.Cache.StoreAST(file, root); err != nil {
			diag.Warn(cacheReporter, diag.IOCacheError, source.Span{File: file.ID}, err.Error())
		}
	}
	return root, false, nil
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

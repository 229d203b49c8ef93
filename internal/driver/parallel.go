package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"brace/internal/ast"
	"brace/internal/buildpipeline"
	"brace/internal/diag"
	"brace/internal/source"
	"brace/internal/trace"
)

// SourceExt is the extension of brace source files.
const SourceExt = ".brc"

// ParseDirOptions configures ParseDir.
type ParseDirOptions struct {
	ParseOptions
	Jobs     int // <= 0 means GOMAXPROCS
	Progress buildpipeline.ProgressSink
}

// ParseDirResult is the outcome for one file.
type ParseDirResult struct {
	Path    string // relative to the directory, forward slashes
	FileID  source.FileID
	Root    ast.Atom
	Bag     *diag.Bag
	Cached  bool
	Elapsed time.Duration
}

// OK reports whether the file parsed without errors.
func (r ParseDirResult) OK() bool { return !r.Bag.HasErrors() }

// ListSourceFiles returns every *.brc file under dir, sorted.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// ParseDir parses every source file under dir in parallel. Results are in
// path order. The returned error is non-nil only when the walk fails or
// ctx is canceled; per-file problems live in each result's Bag.
func ParseDir(ctx context.Context, dir string, opts ParseDirOptions) (*source.FileSet, []ParseDirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "parse-dir")

	// FileSet is not safe for concurrent Add: load everything up front.
	results := make([]ParseDirResult, len(files))
	display := make([]string, len(files))
	loaded := make([]bool, len(files))
	for i, path := range files {
		display[i] = DisplayPath(dir, path)
		results[i] = ParseDirResult{Path: display[i], Bag: opts.newBag()}
		fileID, err := fileSet.Load(path)
		if err != nil {
			results[i].FileID = reportLoadFailure(diag.BagReporter{Bag: results[i].Bag}, fileSet, path, err)
			continue
		}
		results[i].FileID = fileID
		loaded[i] = true
	}
	buildpipeline.EmitQueued(opts.Progress, display)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// per-file phases would interleave in a shared timer
	fileOpts := opts.ParseOptions
	fileOpts.Timer = nil

	if opts.Timer != nil {
		idx := opts.Timer.Begin("parse-dir")
		defer opts.Timer.End(idx, fmt.Sprintf("%d files", len(files)))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := &results[i]
			if !loaded[i] {
				report(opts.Progress, res.Path, buildpipeline.StageScan, buildpipeline.StatusError, nil, 0)
				return nil
			}

			started := time.Now()
			fctx, fileSpan := trace.Start(gctx, trace.ScopeFile, "file:"+res.Path)

			report(opts.Progress, res.Path, buildpipeline.StageParse, buildpipeline.StatusWorking, nil, 0)
			root, cached, err := parseFile(fctx, fileSet.Get(res.FileID), fileOpts, res.Bag)
			res.Elapsed = time.Since(started)
			res.Cached = cached
			if err != nil {
				reportFailure(diag.BagReporter{Bag: res.Bag}, err)
				fileSpan.End("error")
				report(opts.Progress, res.Path, buildpipeline.StageParse, buildpipeline.StatusError, err, res.Elapsed)
				return nil
			}
			res.Root = root
			fileSpan.End("ok")
			report(opts.Progress, res.Path, buildpipeline.StageParse, buildpipeline.StatusDone, nil, res.Elapsed)
			return nil
		})
	}

	err = g.Wait()
	span.End(errDetail(err))
	if err != nil {
		return fileSet, nil, err
	}
	return fileSet, results, nil
}

func report(sink buildpipeline.ProgressSink, file string, stage buildpipeline.Stage, status buildpipeline.Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(buildpipeline.Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

// DisplayPath renders path relative to dir with forward slashes.
func DisplayPath(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

package driver

import (
	"context"
	"io"

	"brace/internal/diag"
	"brace/internal/eval"
	"brace/internal/trace"
)

// RunOptions configures Run and Execute.
type RunOptions struct {
	ParseOptions
	// Env defaults to eval.DefaultEnv().
	Env *eval.Env
}

// Run parses the file at path and, when it parsed cleanly, evaluates it
// with output going to w. Evaluation failures end up in the result's Bag.
func Run(ctx context.Context, path string, w io.Writer, opts RunOptions) (*ParseResult, error) {
	res, err := Parse(ctx, path, opts.ParseOptions)
	if err != nil {
		return nil, err
	}
	Execute(ctx, res, w, opts)
	return res, nil
}

// Execute evaluates an already parsed result. It does nothing when res
// carries errors.
func Execute(ctx context.Context, res *ParseResult, w io.Writer, opts RunOptions) {
	if !res.OK() {
		return
	}
	env := opts.Env
	if env == nil {
		env = eval.DefaultEnv()
	}

	ctx, span := trace.Start(ctx, trace.ScopePass, "run")

	err := track(opts.Timer, "run", func() error {
		return eval.Eval(ctx, env, res.Root, w)
	})
	span.End(errDetail(err))
	if err != nil {
		reportFailure(diag.BagReporter{Bag: res.Bag}, err)
	}
}

package main

import (
	"context"
	"io"

	"brace/internal/buildpipeline"
	"brace/internal/driver"
	"brace/internal/source"
	"brace/internal/ui"
)

type parseDirOutcome struct {
	fileSet *source.FileSet
	results []driver.ParseDirResult
	err     error
}

// parseDirWithUI runs ParseDir in the background while the progress model
// renders its events to out.
func parseDirWithUI(ctx context.Context, out io.Writer, title, dir string, files []string, opts driver.ParseDirOptions) (*source.FileSet, []driver.ParseDirResult, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan parseDirOutcome, 1)

	next := opts.Progress
	go func() {
		optsCopy := opts
		optsCopy.Progress = fanOut{buildpipeline.ChannelSink{Ch: events}, next}
		fs, results, err := driver.ParseDir(ctx, dir, optsCopy)
		outcomeCh <- parseDirOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	uiErr := ui.RunProgress(ctx, title, files, events, out)
	if uiErr != nil {
		// keep draining so ParseDir never blocks on a full channel
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}

// fanOut forwards every event to each non-nil sink.
type fanOut []buildpipeline.ProgressSink

func (f fanOut) OnEvent(evt buildpipeline.Event) {
	for _, sink := range f {
		if sink != nil {
			sink.OnEvent(evt)
		}
	}
}

package driver

import (
	"encoding/json"
	"fmt"

	"brace/internal/diag"
	"brace/internal/observ"
	"brace/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// AppendTimingDiagnostic adds an OBS6001 info diagnostic summarising timer
// to bag. The note carries the report as JSON. The bag grows if it is full.
func AppendTimingDiagnostic(bag *diag.Bag, file *source.File, kind string, timer *observ.Timer) {
	if bag == nil || timer == nil || file == nil {
		return
	}
	report := timer.Report()
	payload := timingPayload{Kind: kind, Path: file.Path, TotalMS: report.TotalMS, Phases: report.Phases}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	span := source.Span{File: file.ID}
	entry := diag.New(diag.SevInfo, diag.ObsTimings, span,
		fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)).
		WithNote(span, string(data))

	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}

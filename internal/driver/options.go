package driver

import (
	"brace/internal/diag"
	"brace/internal/observ"
)

// DefaultMaxDiagnostics is used when no positive limit is configured.
const DefaultMaxDiagnostics = 100

// ParseOptions configures the scan, tree and parse stages.
type ParseOptions struct {
	MaxDiagnostics int
	// Cache, when set, is consulted before parsing and filled after.
	Cache *DiskCache
	// Timer, when set, records one phase per stage.
	Timer *observ.Timer
}

func (o ParseOptions) newBag() *diag.Bag {
	if o.MaxDiagnostics <= 0 {
		return diag.NewBag(DefaultMaxDiagnostics)
	}
	return diag.NewBag(o.MaxDiagnostics)
}

func track(t *observ.Timer, name string, fn func() error) error {
	if t == nil {
		return fn()
	}
	return t.Track(name, fn)
}

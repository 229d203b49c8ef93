// Package diag defines the diagnostic model shared by every pipeline phase.
//
// A Diagnostic is a Severity, a stable Code, a short Message, the Primary
// span and optional Notes. syntax.Error and eval.Error build one directly;
// the driver reports them through a Reporter, usually a BagReporter.
//
// Beyond the one-line form of FormatShortDiagnostics, rendering lives in
// internal/diagfmt.
package diag

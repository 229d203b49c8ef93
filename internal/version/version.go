// Package version holds build metadata for the brace CLI.
// The variables can be overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colored renders Version with each numeric component highlighted.
// Pre-release suffixes are kept uncolored.
func Colored() string {
	core, suffix, hasSuffix := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2])
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}

// Info is the full version line, e.g. "brace 0.1.0-dev (abc123, 2024-01-15)".
func Info() string {
	var sb strings.Builder
	sb.WriteString("brace ")
	sb.WriteString(Colored())
	var meta []string
	if GitCommit != "" {
		meta = append(meta, GitCommit)
	}
	if BuildDate != "" {
		meta = append(meta, BuildDate)
	}
	if len(meta) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(meta, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

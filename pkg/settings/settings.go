// Package settings provides build metadata and per-run configuration
// shared across the dirtree CLI packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "dirtree"

// VersionInformation is populated at build time via ldflags and holds
// the commit hash, semantic version, and build timestamp.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds configuration for a single execution: logging, cache
// location, traversal mode and output behavior.
type Run struct {
	MinLogLevel    int8
	CachePath      string
	StartPath      string
	NavigationMode string
	NoColor        bool
	PrintSelection bool
}

// NewCliParams returns Run defaults for CLI usage.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel:    0,
		NavigationMode: "linear",
		PrintSelection: true,
	}
}

package version

import "fmt"

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	//nolint:gochecknoglobals // Set by the linker.
	Version = "0.1.0"
	// Commit is the short git SHA embedded at build time (or "none").
	//nolint:gochecknoglobals // Set by the linker.
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	//nolint:gochecknoglobals // Set by the linker.
	BuildTime = "unknown"
)

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns the version with commit and build time.
func Full() string {
	return fmt.Sprintf("safe-lock %s (commit %s, built %s)", Version, Commit, BuildTime)
}

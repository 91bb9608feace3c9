// Package version exposes build metadata of the safe-lock binary.
//
// Version, Commit and BuildTime are injected with -ldflags at build time and
// default to placeholder values for local builds.
package version

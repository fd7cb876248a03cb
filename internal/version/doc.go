// Package version exposes build metadata shared by walk-buddy and
// walk-buddy-relay.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags, e.g. -X github.com/oshokin/walk-buddy/internal/version.Commit=abc123.
package version

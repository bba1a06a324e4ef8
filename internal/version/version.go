// Package version exposes build information for aipulse binaries.
package version

import "fmt"

// Set at build time via -ldflags "-X aipulse/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns a single-line human readable version string.
func Info() string {
	return fmt.Sprintf("aipulse %s (commit %s, built %s)", Version, Commit, Date)
}

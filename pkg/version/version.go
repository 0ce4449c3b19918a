// Package version holds build-time version metadata for camd.
package version

import "fmt"

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/cheapamd/camd/pkg/version.Version=1.0.0"
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// UserAgent returns the User-Agent string camd sends to provider APIs.
func UserAgent() string {
	return fmt.Sprintf("camd/%s", Version)
}

// String returns a human-readable version line.
func String() string {
	return fmt.Sprintf("camd %s (commit %s, built %s)", Version, Commit, Date)
}

// Package version holds the build metadata of the tdif binary.
package version

import "fmt"

// Set at build time with -ldflags "-X".
var (
	Version    = "dev"
	CommitHash = "n/a"
	BuildTime  = "n/a"
)

// BuildVersion returns a one-line banner for the tdif binary.
func BuildVersion() string {
	return fmt.Sprintf("tdif %s (commit %s, built %s)", Version, CommitHash, BuildTime)
}

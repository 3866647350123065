// Package version provides build-time version information.
package version

import "fmt"

// These variables are set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Line formats the --version output for program.
func Line(program string) string {
	return fmt.Sprintf("%s version %s (commit: %s, built: %s)\n", program, Version, Commit, Date)
}

// Package version provides build version information.
package version

import "fmt"

// These variables are set at build time via ldflags.
var (
	// Version is the semantic version of the build.
	Version = "dev"

	// GitCommit is the git commit hash of the build.
	GitCommit = "unknown"

	// BuildTime is the time the build was created.
	BuildTime = "unknown"
)

// Full returns the version with commit and build time, for CLI output.
func Full() string {
	return fmt.Sprintf("runbook-lint %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}

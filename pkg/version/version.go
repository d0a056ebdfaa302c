// Package version contains version information for completers.
package version

var (
	// Version is the current version of completers.
	Version = "dev"
	// BuildTime is the time when the binary was built.
	BuildTime = "unknown"
	// GitCommit is the git commit hash of the build.
	GitCommit = "unknown"
)

// Package version exposes build metadata injected with -ldflags.
package version

import "fmt"

//nolint:gochecknoglobals // Populated at link time.
var (
	version   = "0.1.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the semantic version of the binary.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// String returns a one-line summary used by the version command.
func String() string {
	return fmt.Sprintf("puretable %s (commit %s, built %s)", version, gitCommit, buildDate)
}

// Package version reports build metadata for the issue-assistant binaries.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const product = "issue-assistant"

// Build-time variables set via ldflags.
// Example: go build -ldflags="-X issue-assistant/internal/version.Version=v1.0.0"
var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git SHA. When ldflags leave it unset, the VCS stamp from
	// the Go build info is used instead.
	Commit = "unknown"

	// BuildDate is the RFC3339 build timestamp.
	BuildDate = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Short returns the bare version, e.g. "v1.2.3" or "dev".
func Short() string {
	return Version
}

// UserAgent is sent on outbound calls to GitHub and to the local API.
func UserAgent() string {
	return product + "/" + Version
}

// Revision returns Commit, falling back to the vcs.revision build setting
// (with a "-dirty" suffix for modified trees).
func Revision() string {
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	info, ok := readBuildInfo()
	if !ok {
		return Commit
	}
	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return Commit
	}
	if dirty {
		rev += "-dirty"
	}
	return rev
}

// Info is the one-line form logged at server start.
func Info() string {
	commit := Revision()
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s %s (commit: %s, built: %s, go: %s)",
		product, Version, commit, BuildDate, runtime.Version())
}

// Full is printed by "issuectl version --verbose".
func Full() string {
	return fmt.Sprintf(`%s %s
  Commit:     %s
  Built:      %s
  Go version: %s
  OS/Arch:    %s/%s`,
		product, Version, Revision(), BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

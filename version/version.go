// Package version reports the release of the hashcore binary.
package version

import "fmt"

// Release numbers, bumped by hand on every tag.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// gitCommit is set with -ldflags "-X massnet.org/hashcore/version.gitCommit=...".
var gitCommit string

// format renders "<major>.<minor>.<patch>", followed by "+<commit>" with
// the first 8 characters of commit when it has at least 8.
func format(major, minor, patch int, commit string) string {
	v := fmt.Sprintf("%d.%d.%d", major, minor, patch)
	if len(commit) >= 8 {
		v += "+" + commit[:8]
	}
	return v
}

// GetVersion returns the version string, like "1.0.0" or "1.0.0+1a2b3c4d".
func GetVersion() string {
	return format(Major, Minor, Patch, gitCommit)
}

// Package version carries the build information stamped in at release time.
package version

import "fmt"

// Build information set by ldflags:
//
//	-X github.com/arthur-debert/vendorsync/internal/version.Version=v1.2.3
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the build information as one value
type Info struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

// Get returns the current build information
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String renders the one-line form used by --version and man pages
func (i Info) String() string {
	if i.Commit == "unknown" {
		return i.Version
	}
	return fmt.Sprintf("%s (%s, %s)", i.Version, i.Commit, i.Date)
}

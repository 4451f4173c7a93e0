// Package version holds build information for the topmolt binary and SDK
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build-time variables, set via -ldflags "-X github.com/topmolt/cli/src/common/version.Version=..."
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info describes the running build
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// Get returns the current build info
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// String returns "<version> (<os>/<arch>)"
func (i Info) String() string {
	return fmt.Sprintf("%s (%s/%s)", i.Version, i.OS, i.Arch)
}

// Full returns a multi-line description used by `topmolt version`
func (i Info) Full() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Version:    %s\n", i.Version)
	fmt.Fprintf(&sb, "Commit:     %s\n", i.ShortCommit())
	fmt.Fprintf(&sb, "Build Date: %s\n", i.BuildDate)
	fmt.Fprintf(&sb, "Go:         %s\n", i.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:    %s/%s", i.OS, i.Arch)
	return sb.String()
}

// ShortCommit returns the first 7 characters of the commit hash
func (i Info) ShortCommit() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

// UserAgent returns "<product>/<version>"
func (i Info) UserAgent(product string) string {
	return product + "/" + i.Version
}

// IsDev reports whether this is an unreleased build
func IsDev() bool {
	return Version == "" || Version == "dev" || strings.HasSuffix(Version, "-dev")
}

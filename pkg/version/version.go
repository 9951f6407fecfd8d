// Package version holds build metadata for the mtie binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version, Commit and Date are set at build time with
// -ldflags "-X github.com/Sumatoshi-tech/mtie/pkg/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const (
	develVersion  = "(devel)"
	vcsRevision   = "vcs.revision"
	vcsTime       = "vcs.time"
	shortRevision = 12
)

// InitBinaryVersion fills unset fields from the module build info,
// so `go install` builds report something useful.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) {
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != develVersion {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case vcsRevision:
			if Commit == "none" {
				Commit = setting.Value
				if len(Commit) > shortRevision {
					Commit = Commit[:shortRevision]
				}
			}
		case vcsTime:
			if Date == "unknown" {
				Date = setting.Value
			}
		}
	}
}

// String renders the full version line.
func String() string {
	return fmt.Sprintf("mtie %s (commit: %s, built: %s)", Version, Commit, Date)
}

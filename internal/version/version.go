// Package version reports build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String renders a one-line build description. Commit and Date fall back to
// the VCS stamp recorded by the go toolchain when ldflags left them unset.
func String() string {
	commit, date := Commit, Date
	if info, ok := debug.ReadBuildInfo(); ok {
		commit, date = fromBuildInfo(info, commit, date)
	}
	return fmt.Sprintf("caltwo %s (commit=%s, date=%s, go=%s)", Version, commit, date, runtime.Version())
}

func fromBuildInfo(info *debug.BuildInfo, commit, date string) (string, string) {
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && commit == "none":
			commit = s.Value[:min(len(s.Value), 12)]
		case s.Key == "vcs.time" && date == "unknown":
			date = s.Value
		}
	}
	return commit, date
}

// Package version provides version information for the feedly-mcp server.
package version

import (
	"runtime"
	"runtime/debug"
	"strings"
)

const (
	unknownValue = "unknown"
	devVersion   = "dev"
)

// These variables can be set at build time using -ldflags
var (
	// Version is the version of the binary, set at build time
	Version = devVersion
	// GitCommit is the git commit hash, set at build time
	GitCommit = unknownValue
	// BuildDate is the build date, set at build time
	BuildDate = unknownValue
)

// Info contains version information
type Info struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
}

// Get returns version information
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}

	// Fall back to VCS build metadata when not set via ldflags
	if info.Version == devVersion {
		updateBuildInfo(&info)
	}

	info.Version = strings.TrimPrefix(info.Version, "v")

	return info
}

// updateBuildInfo updates version info from build metadata
func updateBuildInfo(info *Info) {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.GitCommit == unknownValue {
				if len(setting.Value) > 7 {
					info.GitCommit = setting.Value[:7]
				} else {
					info.GitCommit = setting.Value
				}
			}
		case "vcs.time":
			if info.BuildDate == unknownValue {
				info.BuildDate = setting.Value
			}
		}
	}
}

// GetVersion returns just the version string
func GetVersion() string {
	return Get().Version
}

// GetFullVersion returns a full version string with commit info
func GetFullVersion() string {
	info := Get()
	if info.GitCommit != unknownValue {
		return info.Version + "-" + info.GitCommit
	}
	return info.Version
}

// Package misc provides build-time program identification.
package misc

import "runtime/debug"

const appName = "sohtml"

// set by the build with -ldflags "-X sohtml/misc.version=..."
var version string

func GetAppName() string {
	return appName
}

// GetVersion returns program version: the value injected at build time, the
// module version from build info, or "devel".
func GetVersion() string {
	if len(version) > 0 {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && len(bi.Main.Version) > 0 && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "devel"
}

// GetGitHash returns VCS revision recorded in build info, if any.
func GetGitHash() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 10 {
				return s.Value[:10]
			}
			return s.Value
		}
	}
	return "unknown"
}

// Package misc provides program identity helpers.
package misc

import "runtime/debug"

const appName = "cssel"

// GetAppName returns the program name used for logging and CLI output.
func GetAppName() string {
	return appName
}

// GetVersion returns the module version recorded in build info, or
// "devel" for local builds.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "devel"
}

// GetGitHash returns the VCS revision recorded in build info, shortened
// to 12 characters, or "unknown" when the build carries no VCS stamp.
func GetGitHash() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return "unknown"
}

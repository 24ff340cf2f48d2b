package misc

import "runtime/debug"

var (
	appName    = "p2t"
	appVersion = "development"
)

// GetAppName returns the program name used for log files, reports and
// temporary directories.
func GetAppName() string {
	return appName
}

// GetVersion returns the version set at build time or a development marker.
func GetVersion() string {
	return appVersion
}

// GetGitHash returns the vcs revision recorded in the build info.
func GetGitHash() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				if len(s.Value) > 12 {
					return s.Value[:12]
				}
				return s.Value
			}
		}
	}
	return "unknown"
}

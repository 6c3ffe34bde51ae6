// Package version centralizes build version information for the testsmith
// binaries. The build-time variables are set via ldflags.
package version

import (
	"fmt"
	"io"
	"runtime"
)

// Build-time variables, overridden via:
//
//	go build -ldflags "-X testsmith/internal/version.version=v1.2.3 ..."
//
//nolint:gochecknoglobals // Set by the build system via ldflags.
var (
	version   = ""
	commit    = ""
	buildTime = ""
)

const (
	defaultVersion   = "dev"
	defaultCommit    = "unknown"
	defaultBuildTime = "unknown"
)

// Info holds resolved version information.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the resolved version information, substituting defaults for
// values the build did not set.
func Get() *Info {
	return &Info{
		Version:   withDefault(version, defaultVersion),
		Commit:    withDefault(commit, defaultCommit),
		BuildTime: withDefault(buildTime, defaultBuildTime),
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// SetBuildVars overrides the build-time variables. Intended for build systems
// and tests that inject version information at runtime.
func SetBuildVars(v, c, bt string) {
	version = v
	commit = c
	buildTime = bt
}

// FormatShort returns just the version number.
func (i *Info) FormatShort() string {
	return i.Version
}

// FormatFull returns the complete multi-line version report.
func (i *Info) FormatFull() string {
	return fmt.Sprintf("testsmith %s\ncommit: %s\nbuilt: %s\ngo: %s\nplatform: %s",
		i.Version, i.Commit, i.BuildTime, i.GoVersion, i.Platform)
}

// Write writes the version information to w, short or full form.
func (i *Info) Write(w io.Writer, short bool) error {
	var err error
	if short {
		_, err = fmt.Fprintln(w, i.FormatShort())
	} else {
		_, err = fmt.Fprintln(w, i.FormatFull())
	}
	return err
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Package buildinfo reports which build of instantview is running.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/instantview/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/instantview/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/instantview/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Unstamped builds fall back to the VCS data the go command embeds.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build information served by the HTTP service.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

var vcs = sync.OnceValue(func() (s struct{ revision, time string }) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return s
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			s.revision = setting.Value
		case "vcs.time":
			s.time = setting.Value
		}
	}
	return s
})

// Get returns the current build information.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}
	if info.Commit == "none" && vcs().revision != "" {
		info.Commit = vcs().revision
	}
	if info.Date == "unknown" && vcs().time != "" {
		info.Date = vcs().time
	}
	return info
}

// Template returns the cobra version template.
func Template() string {
	info := Get()
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s, %s)\n", info.Version, info.Commit, info.Date, info.GoVersion)
}

package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGetStamped(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02T03:04:05Z"

	info := Get()
	if info.Version != "v1.2.3" || info.Commit != "abc123" || info.Date != "2026-01-02T03:04:05Z" {
		t.Errorf("Get() = %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %s", info.GoVersion)
	}
	if tmpl := Template(); !strings.HasPrefix(tmpl, "{{.Name}} v1.2.3 (commit abc123") {
		t.Errorf("Template() = %q", tmpl)
	}
}

func TestGetUnstamped(t *testing.T) {
	info := Get()
	if info.Version != "dev" {
		t.Errorf("Version = %s", info.Version)
	}
	if info.Commit == "" || info.Date == "" {
		t.Errorf("empty fallback in %+v", info)
	}
}

package cli

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFiltersLevels(t *testing.T) {
	tests := []struct {
		level log.Level
		debug bool
		info  bool
		warn  bool
	}{
		{log.DebugLevel, true, true, true},
		{log.InfoLevel, false, true, true},
		{log.WarnLevel, false, false, true},
		{log.ErrorLevel, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			logger.Debug("debug-line")
			logger.Info("info-line")
			logger.Warn("warn-line")

			out := buf.String()
			for msg, want := range map[string]bool{
				"debug-line": tt.debug,
				"info-line":  tt.info,
				"warn-line":  tt.warn,
			} {
				if got := strings.Contains(out, msg); got != want {
					t.Errorf("%s logged = %v, want %v", msg, got, want)
				}
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("hello")
	if !regexp.MustCompile(`\d{2}:\d{2}:\d{2}\.\d{2}`).MatchString(buf.String()) {
		t.Errorf("missing timestamp in %q", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.done("Laid out 3 blocks")

	out := buf.String()
	if !strings.Contains(out, "Laid out 3 blocks (") || !strings.Contains(out, "s)") {
		t.Errorf("progress output = %q", out)
	}
}

func TestProgressDoneRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.WarnLevel)).done("quiet")
	if buf.Len() != 0 {
		t.Errorf("progress logged below level: %q", buf.String())
	}
}

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerCancelled(t *testing.T) {
	tests := []struct {
		name   string
		ctx    func() (context.Context, context.CancelFunc)
		cancel bool
		want   bool
	}{
		{"stopped", func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) }, false, false},
		{"cancelled", func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) }, true, true},
		{"timed out", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), time.Millisecond)
		}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			var buf bytes.Buffer
			s := newSpinnerTo(ctx, &buf, "Laying out")
			s.Start()
			if tt.cancel {
				cancel()
			}
			time.Sleep(20 * time.Millisecond)
			s.Stop()

			if got := s.Cancelled(); got != tt.want {
				t.Errorf("Cancelled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Never started")
	s.Stop()
	s.Stop()
	if buf.Len() != 0 {
		t.Errorf("unstarted spinner wrote %q", buf.String())
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Rendering")
	s.Start()
	for range 3 {
		s.Stop()
	}
}

func TestSpinnerStopWithMessage(t *testing.T) {
	out := captureStdout(t)
	var buf bytes.Buffer

	s := newSpinnerTo(context.Background(), &buf, "Rendering")
	s.Start()
	s.StopWithSuccess("Rendered page.svg")

	s = newSpinnerTo(context.Background(), &buf, "Rendering")
	s.Start()
	s.StopWithError("rsvg-convert missing")

	for _, want := range []string{"Rendered page.svg", "rsvg-convert missing"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("stdout missing %q: %q", want, out.String())
		}
	}
}

func TestSpinnerUpdate(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "first message that is long")
	s.Start()
	time.Sleep(120 * time.Millisecond)
	s.Update("second")
	time.Sleep(120 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "first message that is long") || !strings.Contains(out, "second") {
		t.Errorf("output lacks a message: %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("line not cleared: %q", out)
	}
}

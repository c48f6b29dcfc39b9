package fontmetrics

import (
	"reflect"
	"sync"
	"testing"

	"github.com/matzehuels/instantview/pkg/core/text"
)

func newMeasurer(t *testing.T) *Measurer {
	t.Helper()
	m, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return m
}

func TestMeasureSingleLine(t *testing.T) {
	m := newMeasurer(t)
	box := m.Measure(text.Plain("Hello"), text.StyleStack{}.Push(text.FontSize(17)), 600)

	if len(box.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(box.Lines))
	}
	if box.Size.Width <= 0 || box.Size.Width > 600 {
		t.Errorf("width = %v, want in (0, 600]", box.Size.Width)
	}
	if box.Size.Height != 21 {
		t.Errorf("height = %v, want 21", box.Size.Height)
	}
}

func TestMeasureBoldIsWider(t *testing.T) {
	m := newMeasurer(t)
	base := text.StyleStack{}.Push(text.FontSize(17))
	regular := m.Measure(text.Plain("Instant View"), base, 600)
	bold := m.Measure(text.Plain("Instant View"), base.Push(text.Bolded()), 600)
	if bold.Size.Width <= regular.Size.Width {
		t.Errorf("bold width %v <= regular width %v", bold.Size.Width, regular.Size.Width)
	}
}

func TestMeasureWrapsWithinWidth(t *testing.T) {
	m := newMeasurer(t)
	s := text.Plain("The quick brown fox jumps over the lazy dog and keeps running far away")
	box := m.Measure(s, text.StyleStack{}.Push(text.FontSize(17)), 150)
	if len(box.Lines) < 2 {
		t.Errorf("expected wrapping, got %d lines", len(box.Lines))
	}
	for _, l := range box.Lines {
		if l.Frame.Width > 150 {
			t.Errorf("line %q width %v exceeds 150", l.Text(), l.Frame.Width)
		}
	}
}

func TestMeasureEmpty(t *testing.T) {
	m := newMeasurer(t)
	if box := m.Measure(text.Empty{}, text.StyleStack{}, 100); !reflect.DeepEqual(box, text.Box{}) {
		t.Errorf("Measure(empty) = %+v", box)
	}
}

func TestMeasureConcurrent(t *testing.T) {
	m := newMeasurer(t)
	styles := text.StyleStack{}.Push(text.FontSize(15))
	want := m.Measure(text.Plain("concurrent measuring"), styles, 80)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := m.Measure(text.Plain("concurrent measuring"), styles, 80); !reflect.DeepEqual(got, want) {
				t.Error("concurrent Measure differs")
			}
		}()
	}
	wg.Wait()
}

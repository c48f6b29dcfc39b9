package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/instantview/pkg/view"
)

func idx(i int) *int { return &i }

func sampleLayout() view.Layout {
	return view.Layout{
		Width:  320,
		Height: 240,
		Items: []view.Item{
			{Type: view.TypeText, X: 17, Y: 25, Width: 100, Height: 21, Lines: []view.Line{{
				Rect: view.Rect{Width: 100, Height: 21},
				Text: "Hi <there>",
				Runs: []view.Run{
					{Text: "Hi ", Size: 17, Color: "#000000", Bold: true},
					{Text: "<there>", Size: 17, Color: "#2481cc", Link: "https://example.com?a=1&b=2", Underline: true},
				},
			}}},
			{Type: view.TypeMedia, X: 0, Y: 60, Width: 320, Height: 120, Media: "pic", Kind: "image", Index: idx(0)},
			{Type: view.TypeShape, X: 17, Y: 190, Width: 286, Height: 1, Shape: "rect", ShapeFrame: &view.Rect{Width: 286, Height: 1}, Color: "#c8c7cc"},
			{Type: view.TypeAnchor, Y: 200, Width: 320, Name: "end"},
			{Type: view.TypeMedia, X: 20, Y: 205, Width: 30, Height: 30, Media: "avatar", Kind: "image", Index: idx(-1), Rounded: true},
		},
	}
}

func TestRenderJSON(t *testing.T) {
	l := sampleLayout()
	data, err := RenderJSON(l, WithJSONURL("https://example.com/a"), WithJSONMetrics("estimate"))
	if err != nil {
		t.Fatal(err)
	}
	var probe map[string]any
	if err := json.Unmarshal(data, &probe); err != nil {
		t.Fatal(err)
	}
	if probe["url"] != "https://example.com/a" || probe["metrics"] != "estimate" {
		t.Errorf("metadata = %v %v", probe["url"], probe["metrics"])
	}

	back, err := view.UnmarshalLayout(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Items) != len(l.Items) || back.Width != 320 {
		t.Errorf("round trip = %+v", back)
	}
}

func TestRenderJSONPlainMatchesMarshalLayout(t *testing.T) {
	l := sampleLayout()
	got, err := RenderJSON(l)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := view.MarshalLayout(l)
	if !bytes.Equal(got, want) {
		t.Errorf("RenderJSON without options differs from MarshalLayout")
	}

	compact, _ := RenderJSON(l, WithJSONCompact())
	if bytes.Contains(compact, []byte("\n")) {
		t.Error("compact output contains newlines")
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(sampleLayout()))

	for _, want := range []string{
		`viewBox="0 0 320.0 240.0"`,
		`&lt;there&gt;`,
		`<a href="https://example.com?a=1&amp;b=2">`,
		`font-weight="bold"`,
		`text-decoration="underline"`,
		`image pic #0`,
		`fill="#c8c7cc"`,
		`<ellipse`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, "@font-face") {
		t.Error("fonts embedded without WithEmbeddedFonts")
	}
	if strings.Contains(svg, "#end") {
		t.Error("labels drawn without WithLabels")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(sampleLayout(), WithLabels(), WithGrid(100), WithEmbeddedFonts(), WithBackground("#101010")))
	for _, want := range []string{
		"@font-face { font-family: 'Go Mono'",
		"anchor #end",
		`<line x1="100.0" y1="0"`,
		`fill="#101010"`,
		`fill="none"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderRaster(t *testing.T) {
	data, err := RenderRaster(sampleLayout(), WithRasterScale(2))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 480 {
		t.Errorf("bounds = %v, want 640x480", b)
	}
	// The divider row is painted in its own color.
	r, g, b, _ := img.At(100, 381).RGBA()
	if r>>8 != 0xc8 || g>>8 != 0xc7 || b>>8 != 0xcc {
		t.Errorf("divider pixel = %x %x %x", r>>8, g>>8, b>>8)
	}
}

func TestRenderRasterRejectsEmpty(t *testing.T) {
	if _, err := RenderRaster(view.Layout{Width: 320}); err == nil {
		t.Error("expected an error for a zero-height layout")
	}
}

func TestRenderPNGFallsBackToRaster(t *testing.T) {
	data, err := RenderPNG(context.Background(), sampleLayout(), WithRaster(), WithScale(1))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("not a PNG")
	}
}

func ExampleRenderSVG() {
	l := view.Layout{Width: 100, Height: 10, Items: []view.Item{{Type: view.TypeAnchor, Y: 5, Width: 100, Name: "a"}}}
	svg := RenderSVG(l)
	fmt.Println(strings.Count(string(svg), "<line"))
	// Output: 1
}

func TestRenderRasterFrames(t *testing.T) {
	plain, err := RenderRaster(sampleLayout())
	if err != nil {
		t.Fatal(err)
	}
	framed, err := RenderRaster(sampleLayout(), WithRasterFrames())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(plain, framed) {
		t.Error("frames did not change the image")
	}
}

func TestRenderSVGDetails(t *testing.T) {
	section := func(expanded bool) view.Layout {
		return view.Layout{Width: 320, Height: 200, Items: []view.Item{{
			Type: view.TypeDetails, Width: 320, Height: 44, TitleHeight: 44, Expanded: expanded, Index: idx(0),
			Title: &view.Item{Type: view.TypeText, X: 49, Y: 11, Width: 40, Height: 21, Lines: []view.Line{{
				Rect: view.Rect{Width: 40, Height: 21},
				Runs: []view.Run{{Text: "More", Size: 17}},
			}}},
			Items: []view.Item{{Type: view.TypeMedia, Y: 69, Width: 320, Height: 100, Media: "hidden", Kind: "image", Index: idx(0)}},
		}}}
	}

	tests := []struct {
		name     string
		expanded bool
		child    bool
	}{
		{"collapsed hides children", false, false},
		{"expanded draws children", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(RenderSVG(section(tt.expanded)))
			if !strings.Contains(svg, ">More</tspan>") {
				t.Error("title not drawn")
			}
			if got := strings.Contains(svg, "image hidden #0"); got != tt.child {
				t.Errorf("child drawn = %v, want %v", got, tt.child)
			}
		})
	}
}

package outline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/instantview/pkg/core/media"
	"github.com/matzehuels/instantview/pkg/core/page"
	"github.com/matzehuels/instantview/pkg/core/text"
)

func samplePage() page.Page {
	return page.Page{
		URL:    "https://example.com/a",
		Loaded: true,
		Media:  media.NewTable(media.Descriptor{ID: "pic", Kind: media.KindImage, Width: 10, Height: 10}),
		Blocks: []page.Block{
			page.Title{Text: text.Plain("A title that is definitely longer than the excerpt limit")},
			page.Collage{Blocks: []page.Block{
				page.Image{Media: "pic"},
				page.Image{Media: "gone"},
			}},
			page.Unsupported{Name: "map"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(samplePage(), Options{})

	for _, want := range []string{
		"digraph G",
		`"page" -> "b0"`,
		`"page" -> "b1"`,
		`"b1" -> "b1.0"`,
		`"b1" -> "b1.1"`,
		`label="unsupported (map)"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q", want)
		}
	}
	if strings.Contains(dot, "media: pic") {
		t.Error("non-detailed output contains details")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(samplePage(), Options{Detailed: true, MaxExcerpt: 10})

	if !strings.Contains(dot, `title\nA title t…`) {
		t.Errorf("excerpt not truncated:\n%s", dot)
	}
	if !strings.Contains(dot, `image\nmedia: gone`) {
		t.Error("missing media reference")
	}
}

func TestToDOTHighlights(t *testing.T) {
	dot := ToDOT(samplePage(), Options{})
	lines := strings.Split(dot, "\n")
	find := func(id string) string {
		for _, l := range lines {
			if strings.HasPrefix(strings.TrimSpace(l), fmt.Sprintf("%q [", id)) {
				return l
			}
		}
		return ""
	}

	if l := find("b1.1"); !strings.Contains(l, "color=red") {
		t.Errorf("unresolved media not highlighted: %q", l)
	}
	if l := find("b1.0"); strings.Contains(l, "dashed") {
		t.Errorf("resolved media highlighted: %q", l)
	}
	if l := find("b2"); !strings.Contains(l, "lightgrey") {
		t.Errorf("unsupported block not greyed: %q", l)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(samplePage(), Options{}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("unexpected SVG header: %.200s", svg)
	}
}

func ExampleToDOT() {
	pg := page.Page{Blocks: []page.Block{page.Divider{}}}
	for _, l := range strings.Split(ToDOT(pg, Options{}), "\n") {
		if strings.Contains(l, "b0") {
			fmt.Println(strings.TrimSpace(l))
		}
	}
	// Output:
	// "b0" [label="divider"];
	// "page" -> "b0";
}

func TestToDOTNestsDetails(t *testing.T) {
	pg := page.Page{Loaded: true, Blocks: []page.Block{
		page.Details{Title: text.Plain("Sources"), Blocks: []page.Block{
			page.Paragraph{Text: text.Plain("one")},
			page.List{Items: []page.ListItem{{Blocks: []page.Block{page.Divider{}}}}},
		}},
	}}
	dot := ToDOT(pg, Options{Detailed: true, MaxExcerpt: 20})
	for _, want := range []string{
		`"b0" -> "b0.0"`,
		`"b0" -> "b0.1"`,
		`"b0.1" -> "b0.1.0"`,
		`details\nSources`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
}

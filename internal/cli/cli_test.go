package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/instantview/pkg/errors"
	"github.com/matzehuels/instantview/pkg/view"
)

const pageJSON = `{
  "url": "https://example.com/a",
  "blocks": [
    {"type": "title", "text": "Hello"},
    {"type": "paragraph", "text": "A short paragraph of body text."},
    {"type": "divider"},
    {"type": "anchor", "name": "end"}
  ]
}`

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", " SVG, dot ,", []string{"svg", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// run executes the root command in a temporary working directory holding
// page.json, with the cache redirected to a temporary directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Chdir(dir)
	if err := os.WriteFile("page.json", []byte(pageJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return dir, root.ExecuteContext(context.Background())
}

func TestRootHelpNamesApp(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	help := out.String()
	for _, want := range []string{"instantview [command]", "Instant View", "collapsible", "outline", "inspect"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q:\n%s", want, help)
		}
	}
	if strings.Contains(help, "tables") {
		t.Errorf("help advertises tables, which are not laid out:\n%s", help)
	}
}

func TestLayoutCommand(t *testing.T) {
	dir, err := run(t, "layout", "page.json", "--width", "390")
	if err != nil {
		t.Fatal(err)
	}
	l, err := view.ReadLayoutFile(filepath.Join(dir, "page.layout.json"))
	if err != nil {
		t.Fatal(err)
	}
	if l.Width != 390 || l.Count(view.TypeText) != 2 {
		t.Errorf("layout = %+v", l)
	}
	if _, ok := l.Anchor("end"); !ok {
		t.Error("anchor end missing")
	}
}

func TestRenderCommand(t *testing.T) {
	dir, err := run(t, "render", "page.json", "-f", "svg,dot", "--labels", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "page.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("anchor #end")) {
		t.Errorf("unexpected svg: %.80s", svg)
	}
	dot, err := os.ReadFile(filepath.Join(dir, "page.dot"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dot), "digraph G {") {
		t.Errorf("unexpected dot: %.40s", dot)
	}
}

func TestRenderSavedLayout(t *testing.T) {
	dir, err := run(t, "layout", "page.json")
	if err != nil {
		t.Fatal(err)
	}
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"render", "page.layout.json", "-o", "out.svg"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.svg")); err != nil {
		t.Error(err)
	}

	// The block tree is not part of a saved layout.
	root = New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"render", "page.layout.json", "-f", "dot"})
	root.SetErr(io.Discard)
	if err := root.Execute(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestOutlineCommandDOT(t *testing.T) {
	dir, err := run(t, "outline", "page.json", "-f", "dot", "--detailed")
	if err != nil {
		t.Fatal(err)
	}
	dot, err := os.ReadFile(filepath.Join(dir, "page.outline.dot"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dot), "Hello") {
		t.Errorf("detailed outline lacks the title excerpt:\n%s", dot)
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"layout", "absent.json"}, errors.ErrCodeFileNotFound},
		{"not a document", []string{"layout", "page.txt"}, errors.ErrCodeInvalidPath},
		{"bad width", []string{"layout", "page.json", "--width", "-1"}, errors.ErrCodeInvalidWidth},
		{"bad metrics", []string{"layout", "page.json", "--metrics", "magic"}, errors.ErrCodeInvalidMetrics},
		{"bad format", []string{"render", "page.json", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad outline format", []string{"outline", "page.json", "-f", "json"}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestItemListModel(t *testing.T) {
	l := view.Layout{Width: 320, Height: 400}
	for i := 0; i < 20; i++ {
		l.Items = append(l.Items, view.Item{Type: view.TypeShape, Y: float64(i * 20), Width: 320, Height: 1, Shape: "rect"})
	}
	var m tea.Model = NewItemListModel(l)

	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	if got := m.(ItemListModel).Height; got != 5 {
		t.Fatalf("Height = %d, want 5", got)
	}

	for i := 0; i < 7; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	im := m.(ItemListModel)
	if im.Cursor != 7 || im.Offset != 3 {
		t.Errorf("cursor/offset = %d/%d, want 7/3", im.Cursor, im.Offset)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	if im = m.(ItemListModel); im.Cursor != 19 || im.Offset != 15 {
		t.Errorf("after G cursor/offset = %d/%d, want 19/15", im.Cursor, im.Offset)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if im = m.(ItemListModel); im.Cursor != 18 {
		t.Errorf("after k cursor = %d, want 18", im.Cursor)
	}

	if out := m.View(); !strings.Contains(out, "[19/20]") {
		t.Errorf("view lacks the position footer:\n%s", out)
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}); cmd == nil {
		t.Error("q should quit")
	}
}

func TestItemListModelEmpty(t *testing.T) {
	m := NewItemListModel(view.Layout{Width: 320})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if next.(ItemListModel).Cursor != 0 {
		t.Error("cursor moved in an empty list")
	}
	if !strings.Contains(next.View(), "no items") {
		t.Error("empty view lacks the placeholder")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer line of text", 8, "a longe…"},
		{"日本語のテキスト", 7, "日本語…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestItemSummaryDetails(t *testing.T) {
	title := &view.Item{Type: view.TypeText, Lines: []view.Line{{Text: "Sources"}}}
	tests := []struct {
		name string
		item view.Item
		want string
	}{
		{"collapsed", view.Item{Type: view.TypeDetails, Title: title, Items: make([]view.Item, 3)}, "Sources (collapsed, 3 items)"},
		{"expanded untitled", view.Item{Type: view.TypeDetails, Expanded: true}, "(expanded, 0 items)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := itemSummary(tt.item); got != tt.want {
				t.Errorf("itemSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCacheCommands(t *testing.T) {
	dir, err := run(t, "layout", "page.json")
	if err != nil {
		t.Fatal(err)
	}
	exec := func(args ...string) string {
		t.Helper()
		out := captureStdout(t)
		root := New(io.Discard, LogInfo).RootCommand()
		root.SetArgs(args)
		root.SetOut(out)
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return out.String()
	}

	cacheDir := filepath.Join(dir, "cache", "instantview")
	if got := exec("cache", "path"); !strings.Contains(got, cacheDir) {
		t.Errorf("cache path = %q, want %s", got, cacheDir)
	}
	if got := exec("cache", "info"); !strings.Contains(got, "Entries") || !strings.Contains(got, cacheDir) {
		t.Errorf("cache info =\n%s", got)
	}
	if got := exec("cache", "clear"); !strings.Contains(got, "Removed") {
		t.Errorf("cache clear = %q", got)
	}
	if got := exec("cache", "clear"); !strings.Contains(got, "already empty") {
		t.Errorf("second cache clear = %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	for n, want := range map[int64]string{
		0:           "0 B",
		1023:        "1023 B",
		1536:        "1.5 KiB",
		5 << 20:     "5.0 MiB",
		3 << 30 / 2: "1.5 GiB",
	} {
		if got := formatBytes(n); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", n, got, want)
		}
	}
}

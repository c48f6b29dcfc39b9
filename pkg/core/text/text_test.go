package text

import (
	"fmt"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		text RichText
		want bool
	}{
		{"nil", nil, true},
		{"empty", Empty{}, true},
		{"blank plain", Plain(""), true},
		{"plain", Plain("a"), false},
		{"concat of empties", Concat{Empty{}, Plain("")}, true},
		{"concat with text", Concat{Empty{}, Plain("x")}, false},
		{"span of empty", Bold(Empty{}), true},
		{"span with text", Italic(Plain("x")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEmpty(tt.text); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	if _, ok := Join(Empty{}, Plain("")).(Empty); !ok {
		t.Error("Join of empties should be Empty")
	}
	if got := Join(Empty{}, Plain("a")); got != Plain("a") {
		t.Errorf("Join single = %#v, want Plain(a)", got)
	}
	if got := PlainString(Join(Plain("a"), Bold(Plain("b")), Plain("c"))); got != "abc" {
		t.Errorf("PlainString(Join) = %q, want abc", got)
	}
}

func TestStyleStackPushDoesNotAlias(t *testing.T) {
	base := StyleStack{}.Push(FontSize(10))
	bold := base.Push(Bolded())
	italic := base.Push(Italicized())

	if base.Len() != 1 {
		t.Fatalf("base.Len() = %d, want 1", base.Len())
	}
	if a := bold.Resolve(); !a.Bold || a.Italic {
		t.Errorf("bold stack resolved to %+v", a)
	}
	if a := italic.Resolve(); a.Bold || !a.Italic {
		t.Errorf("italic stack resolved to %+v", a)
	}
}

func TestStyleStackResolveInnermostWins(t *testing.T) {
	s := StyleStack{}.Push(FontSize(17)).Push(Serif(true)).Push(FontSize(28))
	a := s.Resolve()
	if a.FontSize != 28 || !a.Serif {
		t.Errorf("Resolve() = %+v, want size 28 serif", a)
	}
	if got := (StyleStack{}).Resolve(); got != DefaultAttributes {
		t.Errorf("empty Resolve() = %+v, want defaults", got)
	}
}

func TestFlattenMergesRuns(t *testing.T) {
	runs := Flatten(Concat{Plain("a"), Plain("b"), Bold(Plain("c")), Link(Plain("d"), "https://x")}, StyleStack{})
	if len(runs) != 3 {
		t.Fatalf("len(runs) = %d, want 3: %+v", len(runs), runs)
	}
	if runs[0].Text != "ab" || runs[1].Text != "c" || !runs[1].Attrs.Bold {
		t.Errorf("unexpected runs %+v", runs)
	}
	if runs[2].Attrs.Link != "https://x" {
		t.Errorf("link run = %+v", runs[2])
	}
}

func TestColorText(t *testing.T) {
	var c Color
	if err := c.UnmarshalText([]byte("#79818c")); err != nil {
		t.Fatal(err)
	}
	if c != 0x79818c {
		t.Errorf("got %06x", uint32(c))
	}
	if err := c.UnmarshalText([]byte("#fff")); err != nil || c != White {
		t.Errorf("short form: %v %v", c, err)
	}
	if _, err := ParseColor("nope"); err == nil {
		t.Error("expected error for invalid color")
	}
	b, _ := Color(0x00ff10).MarshalText()
	if string(b) != "#00ff10" {
		t.Errorf("MarshalText = %s", b)
	}
}

func ExampleStyleStack_Resolve() {
	stack := StyleStack{}.
		Push(FontSize(17)).
		Push(Serif(true)).
		Push(Foreground(0x79818c))
	a := stack.Resolve()
	fmt.Println(a.FontSize, a.Serif, a.Color)
	// Output: 17 true #79818c
}

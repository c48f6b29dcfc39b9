package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/instantview/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="4" height="4"><rect width="4" height="4"/></svg>`

func TestToPNG(t *testing.T) {
	if !Available() {
		_, err := ToPNG(context.Background(), []byte(tinySVG), 1)
		if !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Errorf("err = %v, want UNSUPPORTED", err)
		}
		t.Skip("rsvg-convert not installed")
	}
	png, err := ToPNG(context.Background(), []byte(tinySVG), 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("not a PNG: % x", png[:8])
	}
}

func TestToPDF(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	pdf, err := ToPDF(context.Background(), []byte(tinySVG))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("not a PDF")
	}
}

func TestConverterMissingBinary(t *testing.T) {
	c := &Converter{Binary: "instantview-no-such-rsvg"}
	if c.Available() {
		t.Fatal("unexpected binary on PATH")
	}
	for name, convert := range map[string]func() ([]byte, error){
		"png": func() ([]byte, error) { return c.PNG(context.Background(), []byte(tinySVG), 2) },
		"pdf": func() ([]byte, error) { return c.PDF(context.Background(), []byte(tinySVG)) },
	} {
		t.Run(name, func(t *testing.T) {
			_, err := convert()
			if !errors.Is(err, errors.ErrCodeUnsupported) {
				t.Errorf("err = %v, want UNSUPPORTED", err)
			}
		})
	}
}

// Package render turns wireframe SVG into PNG and PDF.
//
// The conversion runs rsvg-convert from librsvg. Callers that cannot rely on
// it being installed check [Available] first; the sink package paints PNGs
// in pure Go in that case.
package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"

	"github.com/matzehuels/instantview/pkg/errors"
)

// Converter runs an rsvg-convert compatible binary.
type Converter struct {
	// Binary is the executable name or path. Empty means "rsvg-convert".
	Binary string
	// Background fills transparent areas, e.g. "#ffffff". Empty keeps them
	// transparent.
	Background string
}

// Default is the converter behind [ToPNG], [ToPDF] and [Available].
var Default = &Converter{}

func (c *Converter) binary() string {
	if c.Binary == "" {
		return "rsvg-convert"
	}
	return c.Binary
}

// Available reports whether the converter's binary can be found.
func (c *Converter) Available() bool {
	_, err := exec.LookPath(c.binary())
	return err == nil
}

// PNG rasterizes svg at scale times its intrinsic size.
func (c *Converter) PNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return c.run(ctx, svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
}

// PDF converts svg to a single-page PDF.
func (c *Converter) PDF(ctx context.Context, svg []byte) ([]byte, error) {
	return c.run(ctx, svg, "pdf")
}

func (c *Converter) run(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	if !c.Available() {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s output needs %s (librsvg): brew install librsvg or apt install librsvg2-bin", format, c.binary())
	}
	args = append([]string{"--format", format}, args...)
	if c.Background != "" {
		args = append(args, "--background-color", c.Background)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary(), args...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", c.binary(), bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.Bytes(), nil
}

// Available reports whether rsvg-convert is on PATH.
func Available() bool { return Default.Available() }

// ToPNG converts svg with the default converter.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return Default.PNG(ctx, svg, scale)
}

// ToPDF converts svg with the default converter.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return Default.PDF(ctx, svg)
}

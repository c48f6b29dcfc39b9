package io

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/instantview/pkg/core/layout"
	"github.com/matzehuels/instantview/pkg/errors"
)

// Theme base names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type themeFile struct {
	Base string `toml:"base"`
	layout.Presentation
}

// Preset returns the named base presentation.
func Preset(name string) (layout.Presentation, error) {
	switch strings.ToLower(name) {
	case "", ThemeLight:
		return layout.DefaultPresentation(), nil
	case ThemeDark:
		return layout.DarkPresentation(), nil
	}
	return layout.Presentation{}, errors.New(errors.ErrCodeInvalidTheme, "unknown base theme %q", name)
}

// ReadTheme decodes a TOML theme from r. Keys left out keep the values of
// the base theme; unknown keys are rejected.
func ReadTheme(r io.Reader) (layout.Presentation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return layout.Presentation{}, fmt.Errorf("read theme: %w", err)
	}

	var head struct {
		Base string `toml:"base"`
	}
	if _, err := toml.Decode(string(data), &head); err != nil {
		return layout.Presentation{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "decode theme")
	}
	base, err := Preset(head.Base)
	if err != nil {
		return layout.Presentation{}, err
	}

	tf := themeFile{Presentation: base}
	md, err := toml.Decode(string(data), &tf)
	if err != nil {
		return layout.Presentation{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "decode theme")
	}
	if extra := md.Undecoded(); len(extra) > 0 {
		return layout.Presentation{}, errors.New(errors.ErrCodeInvalidTheme, "unknown theme key %q", extra[0].String())
	}
	return tf.Presentation, nil
}

// LoadTheme reads a TOML theme file.
func LoadTheme(path string) (layout.Presentation, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return layout.Presentation{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return layout.Presentation{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTheme(f)
}

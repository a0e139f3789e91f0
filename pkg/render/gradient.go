package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/colorprofile"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Gradient is an ordered glyph table from darkest to brightest. Index 0 is
// the background glyph.
type Gradient []Glyph

// ErrEmptyGradient is returned by ParseGradient for an empty string.
var ErrEmptyGradient = errors.New("empty gradient")

// Ambiguous-width characters such as the shade blocks count as one column
// regardless of locale.
var glyphWidth = &runewidth.Condition{StrictEmojiNeutral: true}

// Built-in gradients.
var (
	// ASCII works on any terminal.
	ASCII = mustParseGradient(" .:;=X")
	// Blocks needs unicode shade blocks.
	Blocks = mustParseGradient(" ░▒▓█")
	// Bars needs unicode eighth blocks.
	Bars = mustParseGradient(" ▁▂▃▄▅▆▇█")
	// Gray256 pairs adjacent steps of the 256-color gray ramp as background
	// and foreground, with the ASCII characters in between.
	Gray256 = grayGradient(ASCII)
)

// grayRamp is black, the 24 grays of the 256-color cube, then white.
var grayRamp = func() []uint8 {
	ramp := []uint8{16}
	for c := 232; c <= 255; c++ {
		ramp = append(ramp, uint8(c))
	}
	return append(ramp, 255)
}()

func grayGradient(chars Gradient) Gradient {
	g := make(Gradient, 0, (len(grayRamp)-1)*len(chars))
	for i := 0; i+1 < len(grayRamp); i++ {
		style := uv.Style{
			Fg: ansi.IndexedColor(grayRamp[i+1]),
			Bg: ansi.IndexedColor(grayRamp[i]),
		}
		for _, c := range chars {
			g = append(g, Glyph{Char: c.Char, Style: style})
		}
	}
	return g
}

// ParseGradient builds an unstyled gradient with one glyph per grapheme of s.
// Every grapheme must occupy exactly one terminal column.
func ParseGradient(s string) (Gradient, error) {
	if s == "" {
		return nil, ErrEmptyGradient
	}
	var g Gradient
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		c := gr.Str()
		if w := glyphWidth.StringWidth(c); w != 1 {
			return nil, fmt.Errorf("gradient glyph %q is %d columns wide", c, w)
		}
		g = append(g, Glyph{Char: c})
	}
	return g, nil
}

func mustParseGradient(s string) Gradient {
	g, err := ParseGradient(s)
	if err != nil {
		panic(err)
	}
	return g
}

// LookupGradient resolves a built-in gradient name (ascii, blocks, bars,
// gray256). Any other string is parsed as a custom gradient.
func LookupGradient(name string) (Gradient, error) {
	switch strings.ToLower(name) {
	case "ascii":
		return ASCII, nil
	case "blocks":
		return Blocks, nil
	case "bars":
		return Bars, nil
	case "gray256", "256":
		return Gray256, nil
	}
	return ParseGradient(name)
}

// GradientForProfile picks the richest built-in gradient the terminal's
// color profile can show.
func GradientForProfile(p colorprofile.Profile) Gradient {
	switch p {
	case colorprofile.ANSI256, colorprofile.TrueColor:
		return Gray256
	default:
		return ASCII
	}
}

// Background returns the glyph at index 0.
func (g Gradient) Background() Glyph {
	if len(g) == 0 {
		return Glyph{Char: " "}
	}
	return g[0]
}

// String serializes every glyph of the gradient in order.
func (g Gradient) String() string {
	var b strings.Builder
	for _, gl := range g {
		b.WriteString(gl.String())
	}
	return b.String()
}

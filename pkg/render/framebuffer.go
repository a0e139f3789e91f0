// Package render turns meshes into frames of terminal glyphs: projection,
// triangle rasterization, depth testing, color quantization and frame
// serialization.
package render

import (
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

// Glyph is one displayable cell: a single-width character and an optional
// foreground/background style.
type Glyph struct {
	Char  string
	Style uv.Style
}

// String returns the glyph wrapped in its SGR sequence and a reset.
func (g Glyph) String() string {
	return g.Style.Styled(g.Char)
}

// Equal reports whether two glyphs render the same.
func (g Glyph) Equal(o Glyph) bool {
	return g.Char == o.Char && g.Style.Equal(&o.Style)
}

// borderStyle is blue box drawing on the darkest gray.
var borderStyle = uv.Style{
	Fg: ansi.Blue,
	Bg: ansi.IndexedColor(232),
}

// Box drawing glyphs used for the border.
var (
	borderVertical    = Glyph{Char: "│", Style: borderStyle}
	borderHorizontal  = Glyph{Char: "─", Style: borderStyle}
	borderTopLeft     = Glyph{Char: "┌", Style: borderStyle}
	borderTopRight    = Glyph{Char: "┐", Style: borderStyle}
	borderBottomLeft  = Glyph{Char: "└", Style: borderStyle}
	borderBottomRight = Glyph{Char: "┘", Style: borderStyle}
)

// Framebuffer is a Height×Width grid of glyphs.
type Framebuffer struct {
	Width       int     // Width in cells (terminal columns)
	Height      int     // Height in cells (terminal rows)
	Cells       []Glyph // Row-major cell data
	Background  Glyph   // Glyph every cell is reset to
	BorderWidth int     // Nested border rings drawn by Clear
}

// NewFramebuffer creates a cleared framebuffer.
func NewFramebuffer(width, height int, background Glyph, borderWidth int) *Framebuffer {
	fb := &Framebuffer{
		Width:       width,
		Height:      height,
		Cells:       make([]Glyph, width*height),
		Background:  background,
		BorderWidth: borderWidth,
	}
	fb.Clear()
	return fb
}

// Clear resets every cell to the background glyph and draws the border.
func (fb *Framebuffer) Clear() {
	for i := range fb.Cells {
		fb.Cells[i] = fb.Background
	}
	fb.drawBorder()
}

// drawBorder draws BorderWidth nested rings, at most half the height deep.
func (fb *Framebuffer) drawBorder() {
	w, h := fb.Width, fb.Height
	for d := range min(fb.BorderWidth, h/2) {
		for y := d; y < h-d; y++ {
			fb.Set(d, y, borderVertical)
			fb.Set(w-d-1, y, borderVertical)
		}
		for x := d; x < w-d; x++ {
			fb.Set(x, d, borderHorizontal)
			fb.Set(x, h-d-1, borderHorizontal)
		}
		fb.Set(d, d, borderTopLeft)
		fb.Set(w-d-1, d, borderTopRight)
		fb.Set(d, h-d-1, borderBottomLeft)
		fb.Set(w-d-1, h-d-1, borderBottomRight)
	}
}

// Set stores g at (x, y). Out-of-bounds writes are dropped.
func (fb *Framebuffer) Set(x, y int, g Glyph) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Cells[y*fb.Width+x] = g
}

// At returns the glyph at (x, y), or the background out of bounds.
func (fb *Framebuffer) At(x, y int) Glyph {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return fb.Background
	}
	return fb.Cells[y*fb.Width+x]
}

// Row serializes row y. Only style changes are emitted, and a styled row
// ends with a reset so styles never leak into the next line.
func (fb *Framebuffer) Row(y int) string {
	var b strings.Builder
	fb.writeRow(&b, y)
	return b.String()
}

func (fb *Framebuffer) writeRow(b *strings.Builder, y int) {
	var cur uv.Style
	for x := range fb.Width {
		g := fb.Cells[y*fb.Width+x]
		b.WriteString(uv.StyleDiff(&cur, &g.Style))
		cur = g.Style
		b.WriteString(g.Char)
	}
	if !cur.IsZero() {
		b.WriteString(ansi.ResetStyle)
	}
}

// String serializes the whole frame as rows joined by newlines.
func (fb *Framebuffer) String() string {
	var b strings.Builder
	b.Grow(fb.Width * fb.Height * 2)
	for y := range fb.Height {
		if y > 0 {
			b.WriteByte('\n')
		}
		fb.writeRow(&b, y)
	}
	return b.String()
}

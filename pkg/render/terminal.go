package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Draw copies the framebuffer onto an ultraviolet screen, one cell per glyph,
// clipped to area.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y && row-area.Min.Y < fb.Height; row++ {
		for col := area.Min.X; col < area.Max.X && col-area.Min.X < fb.Width; col++ {
			g := fb.At(col-area.Min.X, row-area.Min.Y)
			cell := &uv.Cell{
				Content: g.Char,
				Width:   1,
				Style:   g.Style,
			}
			scr.SetCell(col, row, cell)
		}
	}
}

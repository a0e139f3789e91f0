package render

import "math"

// DepthSentinel is the value every depth cell holds before the first write
// of a frame. Any finite depth beats it.
const DepthSentinel = -math.MaxFloat64

// DepthBuffer holds the winning depth per cell for the current frame.
// Larger values are nearer the viewer.
type DepthBuffer struct {
	Width  int
	Height int
	Values []float64 // Row-major depth data
}

// NewDepthBuffer creates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
	d.Clear()
	return d
}

// Clear resets every cell to DepthSentinel.
func (d *DepthBuffer) Clear() {
	// Use copy-doubling for faster clearing
	n := len(d.Values)
	if n == 0 {
		return
	}
	d.Values[0] = DepthSentinel
	for i := 1; i < n; i *= 2 {
		copy(d.Values[i:], d.Values[:i])
	}
}

// At returns the depth at (x, y), or DepthSentinel out of bounds.
func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return DepthSentinel
	}
	return d.Values[y*d.Width+x]
}

// Set stores z at (x, y). Out-of-bounds writes are dropped.
func (d *DepthBuffer) Set(x, y int, z float64) {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return
	}
	d.Values[y*d.Width+x] = z
}

// Written reports whether (x, y) received a write since the last Clear.
func (d *DepthBuffer) Written(x, y int) bool {
	return d.At(x, y) != DepthSentinel
}

package render

import (
	"math"
)

// DrawMode selects between outlines and filled faces.
type DrawMode int

const (
	DrawFilled    DrawMode = iota // Fill faces (default)
	DrawWireframe                 // Draw the three edges only
)

// String returns the flag spelling of the mode.
func (m DrawMode) String() string {
	if m == DrawWireframe {
		return "wireframe"
	}
	return "filled"
}

// FillMode selects the filled-face strategy.
type FillMode int

const (
	// FillScanline covers every row between the top and bottom vertex with
	// one contiguous span.
	FillScanline FillMode = iota
	// FillConcentric draws nested lines between two edges toward the third
	// vertex. Cheaper and blockier; interior coverage is not guaranteed.
	FillConcentric
)

// String returns the flag spelling of the fill mode.
func (m FillMode) String() string {
	if m == FillConcentric {
		return "concentric"
	}
	return "scanline"
}

// Stats counts the work done for one frame.
type Stats struct {
	TrianglesTested int // Triangles submitted
	TrianglesCulled int // Triangles skipped before rasterization
	TrianglesDrawn  int // Triangles rasterized
	PixelsWritten   int // Fragments that updated a cell
	PixelsRejected  int // Fragments that failed the depth test or range
	PixelsClipped   int // Fragments outside the grid
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.TrianglesTested += o.TrianglesTested
	s.TrianglesCulled += o.TrianglesCulled
	s.TrianglesDrawn += o.TrianglesDrawn
	s.PixelsWritten += o.PixelsWritten
	s.PixelsRejected += o.PixelsRejected
	s.PixelsClipped += o.PixelsClipped
}

// Rasterizer turns screen-space triangles into framebuffer writes.
//
// A fragment at depth z is accepted iff Near ≤ z ≤ Far and, when DepthTest
// is set, z is strictly greater than the stored depth. Accepted fragments
// store their depth and the glyph for their intensity.
type Rasterizer struct {
	fb       *Framebuffer
	depth    *DepthBuffer
	quant    *Quantizer
	gradient Gradient

	Near      float64
	Far       float64
	Mode      DrawMode
	Fill      FillMode
	DepthTest bool
	Stats     Stats

	// Cells touched by the current triangle's outline carry its stamp;
	// fills leave them alone.
	outline []uint32
	stamp   uint32
	tracing bool
}

// NewRasterizer creates a rasterizer writing into fb and depth. Fragments
// are shaded through quant and gradient.
func NewRasterizer(fb *Framebuffer, depth *DepthBuffer, quant *Quantizer, gradient Gradient) *Rasterizer {
	return &Rasterizer{
		fb:        fb,
		depth:     depth,
		quant:     quant,
		gradient:  gradient,
		Near:      quant.Min,
		Far:       quant.Max,
		DepthTest: true,
		outline:   make([]uint32, fb.Width*fb.Height),
	}
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	return r.fb.Height
}

// ResetStats resets the statistics (call once per frame).
func (r *Rasterizer) ResetStats() {
	r.Stats = Stats{}
}

// Culled reports whether the triangle can be skipped outright: any vertex
// is non-finite, its bounding box misses the grid, or its depth range lies
// entirely outside [Near, Far].
func (r *Rasterizer) Culled(v [3]ScreenVertex) bool {
	for _, p := range v {
		if !p.IsFinite() {
			return true
		}
	}

	minX, maxX := min(v[0].X, v[1].X, v[2].X), max(v[0].X, v[1].X, v[2].X)
	minY, maxY := min(v[0].Y, v[1].Y, v[2].Y), max(v[0].Y, v[1].Y, v[2].Y)
	minZ, maxZ := min(v[0].Depth, v[1].Depth, v[2].Depth), max(v[0].Depth, v[1].Depth, v[2].Depth)

	return maxX < 0 || minX >= float64(r.Width()) ||
		maxY < 0 || minY >= float64(r.Height()) ||
		maxZ < r.Near || minZ > r.Far
}

// DrawTriangle rasterizes one screen-space triangle. Degenerate and
// off-screen triangles draw nothing.
func (r *Rasterizer) DrawTriangle(v [3]ScreenVertex) {
	r.Stats.TrianglesTested++
	if r.Culled(v) {
		r.Stats.TrianglesCulled++
		return
	}
	r.Stats.TrianglesDrawn++

	r.nextStamp()

	// The outline goes first and owns its cells, so edge glyphs match the
	// wireframe exactly.
	r.tracing = true
	r.drawLine(v[0], v[2])
	r.drawLine(v[1], v[2])
	r.drawLine(v[0], v[1])
	r.tracing = false

	if r.Mode == DrawWireframe {
		return
	}

	switch r.Fill {
	case FillConcentric:
		r.fillConcentric(v)
	default:
		r.fillScanline(v)
	}
}

// nextStamp starts a new outline generation, wiping the mask on wraparound.
func (r *Rasterizer) nextStamp() {
	r.stamp++
	if r.stamp == 0 {
		clear(r.outline)
		r.stamp = 1
	}
}

// drawLine walks from a to b in max(|Δx|, |Δy|) steps, interpolating
// position, depth and intensity. Zero-length lines draw nothing.
func (r *Rasterizer) drawLine(a, b ScreenVertex) {
	steps := math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))
	if steps == 0 {
		return
	}
	lo, hi, ok := clipSegment(a, b, float64(r.Width()), float64(r.Height()))
	if !ok {
		return
	}
	for s := int(math.Ceil(lo * steps)); s <= int(math.Floor(hi*steps)); s++ {
		t := float64(s) / steps
		r.plot(
			a.X+(b.X-a.X)*t,
			a.Y+(b.Y-a.Y)*t,
			a.Depth+(b.Depth-a.Depth)*t,
			a.Intensity+(b.Intensity-a.Intensity)*t,
		)
	}
}

// fillConcentric draws n nested lines between points sliding along a→c and
// b→c, n being the longer of those two edges, capped at twice the grid
// perimeter.
func (r *Rasterizer) fillConcentric(v [3]ScreenVertex) {
	a, b, c := v[0], v[1], v[2]
	n := math.Ceil(math.Max(
		math.Hypot(c.X-a.X, c.Y-a.Y),
		math.Hypot(c.X-b.X, c.Y-b.Y),
	))
	n = math.Min(n, float64(r.maxConcentricLines()))
	if n == 0 {
		return
	}
	for i := 0.0; i <= n; i++ {
		t := i / n
		r.drawLine(lerpVertex(a, c, t), lerpVertex(b, c, t))
	}
}

func (r *Rasterizer) maxConcentricLines() int {
	return 2 * (r.Width() + r.Height())
}

// plot applies the depth test to one fragment and writes it if it passes.
func (r *Rasterizer) plot(fx, fy, depth, intensity float64) {
	if fx < 0 || fy < 0 || fx >= float64(r.Width()) || fy >= float64(r.Height()) {
		r.Stats.PixelsClipped++
		return
	}
	x, y := int(fx), int(fy)

	i := y*r.Width() + x
	if r.tracing {
		r.outline[i] = r.stamp
	} else if r.outline[i] == r.stamp {
		return
	}

	if depth < r.Near || depth > r.Far {
		r.Stats.PixelsRejected++
		return
	}
	if r.DepthTest && depth <= r.depth.At(x, y) {
		r.Stats.PixelsRejected++
		return
	}

	r.depth.Set(x, y, depth)
	r.fb.Set(x, y, r.quant.Glyph(r.gradient, intensity))
	r.Stats.PixelsWritten++
}

func lerpVertex(a, b ScreenVertex, t float64) ScreenVertex {
	return ScreenVertex{
		X:         a.X + (b.X-a.X)*t,
		Y:         a.Y + (b.Y-a.Y)*t,
		Depth:     a.Depth + (b.Depth-a.Depth)*t,
		Intensity: a.Intensity + (b.Intensity-a.Intensity)*t,
	}
}

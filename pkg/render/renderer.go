package render

import (
	"errors"
	"fmt"
	"slices"

	"github.com/taigrr/tumble/pkg/models"
)

// Visibility selects how hidden surfaces are resolved.
type Visibility int

const (
	// VisibilityDepthBuffer keeps the nearest fragment per cell (default).
	VisibilityDepthBuffer Visibility = iota
	// VisibilityPainter sorts whole triangles by centroid depth and paints
	// them back to front with no per-cell comparison. Wrong for
	// interpenetrating faces.
	VisibilityPainter
)

// String returns the flag spelling of the strategy.
func (v Visibility) String() string {
	if v == VisibilityPainter {
		return "painter"
	}
	return "depth"
}

// Options configures a Renderer. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	Width       int        // Columns per frame
	Height      int        // Rows per frame
	Zoom        float64    // User zoom factor
	AspectRatio float64    // Cell height/width compensation
	BorderWidth int        // Nested border rings
	Mode        DrawMode   // Wireframe or filled
	Fill        FillMode   // Filled-face strategy
	Visibility  Visibility // Hidden-surface strategy
	Dithering   bool       // Error-diffusion dithering
	Gradient    Gradient   // Glyph table, index 0 is the background
}

// DefaultOptions returns an 80×20 filled, depth-buffered, undithered ASCII
// setup.
func DefaultOptions() Options {
	return Options{
		Width:       80,
		Height:      20,
		Zoom:        1,
		AspectRatio: DefaultAspectRatio,
		Gradient:    ASCII,
	}
}

// ErrBadSize is returned for non-positive frame dimensions.
var ErrBadSize = errors.New("frame size must be positive")

// Renderer is one rendering session. It owns the camera, the frame and
// depth buffers, the quantizer with its dither error, and the gradient.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	opts   Options
	mesh   *models.Mesh
	Camera *Camera

	fb     *Framebuffer
	depth  *DepthBuffer
	quant  *Quantizer
	raster *Rasterizer

	// scratch for painter ordering, reused across frames
	order []projected
}

type projected struct {
	v     [3]ScreenVertex
	depth float64 // centroid depth
}

// NewRenderer creates a session for mesh. The mesh must be finalized.
func NewRenderer(mesh *models.Mesh, opts Options) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadSize, opts.Width, opts.Height)
	}
	if len(opts.Gradient) == 0 {
		return nil, ErrEmptyGradient
	}

	r := &Renderer{
		opts:  opts,
		mesh:  mesh,
		quant: NewQuantizer(mesh.DrawDistMin, mesh.DrawDistMax, len(opts.Gradient), opts.Dithering),
	}
	r.allocate(opts.Width, opts.Height)
	return r, nil
}

// allocate builds the camera and buffers for a width×height grid. Angles
// survive reallocation; the dither error does too.
func (r *Renderer) allocate(width, height int) {
	r.opts.Width, r.opts.Height = width, height

	cam := NewCamera(width, height, r.opts.Zoom)
	if r.opts.AspectRatio > 0 {
		cam.AspectRatio = r.opts.AspectRatio
	}
	cam.FitMesh(r.mesh)
	if r.Camera != nil {
		cam.SetRotation(r.Camera.U, r.Camera.V, r.Camera.W)
	}
	r.Camera = cam

	r.fb = NewFramebuffer(width, height, r.opts.Gradient.Background(), r.opts.BorderWidth)
	r.depth = NewDepthBuffer(width, height)

	r.raster = NewRasterizer(r.fb, r.depth, r.quant, r.opts.Gradient)
	r.raster.Near, r.raster.Far = cam.Near, cam.Far
	r.raster.Mode = r.opts.Mode
	r.raster.Fill = r.opts.Fill
	r.raster.DepthTest = r.opts.Visibility == VisibilityDepthBuffer
}

// Resize reallocates the buffers for a new grid size and rescales the zoom.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadSize, width, height)
	}
	if width == r.opts.Width && height == r.opts.Height {
		return nil
	}
	r.allocate(width, height)
	return nil
}

// Options returns the session options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Mesh returns the mesh being rendered.
func (r *Renderer) Mesh() *models.Mesh {
	return r.mesh
}

// Framebuffer returns the frame produced by the last Render.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// DepthBuffer returns the depth buffer of the last Render.
func (r *Renderer) DepthBuffer() *DepthBuffer {
	return r.depth
}

// Quantizer returns the session quantizer.
func (r *Renderer) Quantizer() *Quantizer {
	return r.quant
}

// Render clears the buffers and draws every triangle of the mesh with the
// current camera. The frame stays in Framebuffer until the next Render.
func (r *Renderer) Render() Stats {
	r.fb.Clear()
	r.depth.Clear()
	r.raster.ResetStats()

	rot := r.Camera.Rotation()
	w, h := r.fb.Width, r.fb.Height

	if r.opts.Visibility == VisibilityPainter {
		r.order = r.order[:0]
		for _, t := range r.mesh.Triangles {
			var p projected
			for i, c := range t.P {
				p.v[i] = r.Camera.toScreen(rot, c, w, h)
			}
			p.depth = (p.v[0].Depth + p.v[1].Depth + p.v[2].Depth) / 3
			r.order = append(r.order, p)
		}
		// Back to front. Stable so submission order breaks ties.
		slices.SortStableFunc(r.order, func(a, b projected) int {
			switch {
			case a.depth < b.depth:
				return -1
			case a.depth > b.depth:
				return 1
			}
			return 0
		})
		for _, p := range r.order {
			r.raster.DrawTriangle(p.v)
		}
		return r.raster.Stats
	}

	for _, t := range r.mesh.Triangles {
		var v [3]ScreenVertex
		for i, c := range t.P {
			v[i] = r.Camera.toScreen(rot, c, w, h)
		}
		r.raster.DrawTriangle(v)
	}
	return r.raster.Stats
}

// DrawTriangles rasterizes already projected triangles in order onto the
// current frame without clearing it.
func (r *Renderer) DrawTriangles(tris ...[3]ScreenVertex) Stats {
	r.raster.ResetStats()
	for _, v := range tris {
		r.raster.DrawTriangle(v)
	}
	return r.raster.Stats
}

// Clear resets the frame and depth buffers.
func (r *Renderer) Clear() {
	r.fb.Clear()
	r.depth.Clear()
}

// String serializes the current frame.
func (r *Renderer) String() string {
	return r.fb.String()
}

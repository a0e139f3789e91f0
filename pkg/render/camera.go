package render

import (
	"math"

	"github.com/taigrr/tumble/pkg/math3d"
	"github.com/taigrr/tumble/pkg/models"
)

// DefaultAspectRatio is the height/width ratio of a typical terminal cell.
const DefaultAspectRatio = 1.5

// minDepthFactor keeps the perspective factor positive for points behind
// the viewer. It is a guard, not a near clip.
const minDepthFactor = 0.01

// Camera holds the viewer position, its three rotation angles and the zoom.
type Camera struct {
	// Position in model space
	Position math3d.Vec3

	// Orientation (radians). The angles feed math3d.Rotation, a fixed
	// composite; they are not independent Euler angles.
	U, V, W float64

	// Zoom combines the user zoom with screen-size and model-size
	// normalization.
	Zoom float64

	AspectRatio float64 // Horizontal stretch for non-square cells
	Near        float64 // Nearest accepted depth
	Far         float64 // Farthest accepted depth, also the perspective offset
}

// NewCamera creates a camera at the origin whose zoom is the user factor
// scaled by the smaller screen dimension.
func NewCamera(width, height int, zoom float64) *Camera {
	return &Camera{
		Zoom:        zoom * float64(min(width, height)),
		AspectRatio: DefaultAspectRatio,
		Near:        -1,
		Far:         1,
	}
}

// FitMesh centers the camera on the mesh bounds, adopts the mesh draw
// distances and divides the zoom by DrawDistMax².
func (c *Camera) FitMesh(m *models.Mesh) {
	c.Position = m.Center()
	c.Near = m.DrawDistMin
	c.Far = m.DrawDistMax
	if c.Far > 0 {
		c.Zoom /= c.Far * c.Far
	}
}

// SetRotation sets the three rotation angles (radians).
func (c *Camera) SetRotation(u, v, w float64) {
	c.U, c.V, c.W = u, v, w
}

// Rotation returns the precomputed composite rotation for the current angles.
func (c *Camera) Rotation() math3d.Rotation {
	return math3d.NewRotation(c.U, c.V, c.W)
}

// Project transforms a model-space point into screen-centered coordinates.
// The result carries the zoomed depth in Z and a depth-derived intensity.
// Project has no side effects.
func (c *Camera) Project(p models.Point3) models.Point3 {
	return c.project(c.Rotation(), p)
}

func (c *Camera) project(rot math3d.Rotation, p models.Point3) models.Point3 {
	v := rot.Apply(p.Vec().Sub(c.Position))

	f := math.Max(minDepthFactor, v.Z+c.Far) * 0.5
	v.X *= f
	v.Y *= f

	v = v.Scale(c.Zoom)

	return models.Point3{
		X:         v.X * c.AspectRatio,
		Y:         v.Y,
		Z:         v.Z,
		Intensity: p.Intensity * (v.Z / c.Zoom),
	}
}

// ScreenVertex is a projected vertex in raster space: X grows right, Y grows
// down and (0, 0) is the top-left corner of the top-left cell.
type ScreenVertex struct {
	X, Y      float64
	Depth     float64 // un-zoomed rotated depth, larger is nearer
	Intensity float64
}

// IsFinite reports whether every field is finite.
func (v ScreenVertex) IsFinite() bool {
	return math3d.V3(v.X, v.Y, v.Depth).IsFinite() &&
		!math.IsNaN(v.Intensity) && !math.IsInf(v.Intensity, 0)
}

// ToScreen projects p and moves it into raster space for a width×height grid.
func (c *Camera) ToScreen(p models.Point3, width, height int) ScreenVertex {
	return c.toScreen(c.Rotation(), p, width, height)
}

func (c *Camera) toScreen(rot math3d.Rotation, p models.Point3, width, height int) ScreenVertex {
	q := c.project(rot, p)
	return ScreenVertex{
		X:         float64(width)/2 + q.X,
		Y:         float64(height)/2 - q.Y,
		Depth:     q.Z / c.Zoom,
		Intensity: q.Intensity,
	}
}

// Package models provides 3D model loading and representation for tumble.
package models

import (
	"errors"

	"github.com/taigrr/tumble/pkg/math3d"
)

// White is the base intensity every loaded vertex starts with.
const White = 1.0

var (
	// ErrNoGeometry is returned when a source yields no triangles.
	ErrNoGeometry = errors.New("no geometry")
	// ErrUnknownSolid is returned by Solid for names it does not know.
	ErrUnknownSolid = errors.New("unknown solid")
)

// Point3 is a vertex in model, camera or screen space. Which one depends on
// where in the pipeline it is; the shape is the same.
type Point3 struct {
	X, Y, Z   float64
	Intensity float64 // base color in model space, depth-derived after projection
}

// P3 creates a model-space point with the default base intensity.
func P3(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z, Intensity: White}
}

// Vec returns the position of p.
func (p Point3) Vec() math3d.Vec3 {
	return math3d.V3(p.X, p.Y, p.Z)
}

// Triangle owns its three corners by value. Triangles never share vertex
// storage, so a Triangle is immutable once built.
type Triangle struct {
	P         [3]Point3
	Intensity float64
}

// NewTriangle builds a triangle from three model-space points.
func NewTriangle(a, b, c Point3) Triangle {
	return Triangle{P: [3]Point3{a, b, c}, Intensity: White}
}

// Mesh is an ordered list of triangles. Order is draw submission order.
type Mesh struct {
	Name      string
	Triangles []Triangle

	// Bounding box (calculated by Finalize)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3

	// Near and far depth bounds used for the perspective guard, the depth
	// test range and depth-to-color normalization.
	DrawDistMin float64
	DrawDistMax float64
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Triangles: make([]Triangle, 0),
	}
}

// AddTriangle appends a triangle built from a, b and c.
func (m *Mesh) AddTriangle(a, b, c Point3) {
	m.Triangles = append(m.Triangles, NewTriangle(a, b, c))
}

// AddPolygon fan-triangulates an ordered polygon from its first vertex.
// Polygons with fewer than three vertices add nothing.
func (m *Mesh) AddPolygon(poly []Point3) {
	for i := 1; i+1 < len(poly); i++ {
		m.AddTriangle(poly[0], poly[i], poly[i+1])
	}
}

// Finalize computes the bounding box and the draw distances from the
// triangle corners. It returns ErrNoGeometry when the mesh has no triangles.
//
// With r = max extent / 2, DrawDistMin is -r and DrawDistMax is 1.1r.
func (m *Mesh) Finalize() error {
	if len(m.Triangles) == 0 {
		return ErrNoGeometry
	}
	corners := make([]Point3, 0, 3*len(m.Triangles))
	for _, t := range m.Triangles {
		corners = append(corners, t.P[:]...)
	}
	m.fitBounds(corners)
	return nil
}

// FinalizeBounds is Finalize with the bounding box taken from points, which
// may include vertices no triangle references. An empty points falls back to
// the triangle corners.
func (m *Mesh) FinalizeBounds(points []Point3) error {
	if len(m.Triangles) == 0 {
		return ErrNoGeometry
	}
	if len(points) == 0 {
		return m.Finalize()
	}
	m.fitBounds(points)
	return nil
}

func (m *Mesh) fitBounds(points []Point3) {
	m.BoundsMin, m.BoundsMax = points[0].Vec(), points[0].Vec()
	for _, p := range points[1:] {
		m.BoundsMin = m.BoundsMin.Min(p.Vec())
		m.BoundsMax = m.BoundsMax.Max(p.Vec())
	}

	r := m.Size().MaxComponent() / 2
	m.DrawDistMin = -r
	m.DrawDistMax = r * 1.1
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := *m
	clone.Triangles = make([]Triangle, len(m.Triangles))
	copy(clone.Triangles, m.Triangles)
	return &clone
}

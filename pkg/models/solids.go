package models

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Built-in solid names accepted by Solid.
const (
	Tetrahedron  = "tetrahedron"
	Cube         = "cube"
	Octahedron   = "octahedron"
	Dodecahedron = "dodecahedron"
	Icosahedron  = "icosahedron"
)

// SolidNames lists the built-in solids in face-count order.
func SolidNames() []string {
	return []string{Tetrahedron, Cube, Octahedron, Dodecahedron, Icosahedron}
}

// Solid returns a finalized mesh for one of the five Platonic solids,
// centered at the origin with every vertex on the unit sphere.
func Solid(name string) (*Mesh, error) {
	var faces [][]mgl64.Vec3
	switch name {
	case Tetrahedron:
		faces = triangleFaces(tetrahedronVertices())
	case Octahedron:
		faces = triangleFaces(octahedronVertices())
	case Icosahedron:
		faces = triangleFaces(icosahedronVertices())
	case Cube:
		faces = dualFaces(octahedronVertices())
	case Dodecahedron:
		faces = dualFaces(icosahedronVertices())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSolid, name)
	}

	mesh := NewMesh(name)
	for _, f := range faces {
		poly := make([]Point3, len(f))
		for i, v := range f {
			v = v.Normalize()
			poly[i] = P3(v[0], v[1], v[2])
		}
		mesh.AddPolygon(poly)
	}
	if err := mesh.Finalize(); err != nil {
		return nil, err
	}
	return mesh, nil
}

func tetrahedronVertices() []mgl64.Vec3 {
	return []mgl64.Vec3{
		{1, 1, 1},
		{1, -1, -1},
		{-1, 1, -1},
		{-1, -1, 1},
	}
}

func octahedronVertices() []mgl64.Vec3 {
	return []mgl64.Vec3{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
}

func icosahedronVertices() []mgl64.Vec3 {
	phi := (1 + math.Sqrt(5)) / 2
	var verts []mgl64.Vec3
	for _, a := range []float64{-1, 1} {
		for _, b := range []float64{-phi, phi} {
			verts = append(verts,
				mgl64.Vec3{0, a, b},
				mgl64.Vec3{a, b, 0},
				mgl64.Vec3{b, 0, a},
			)
		}
	}
	return verts
}

// adjacency links every pair of vertices separated by the shortest edge.
func adjacency(verts []mgl64.Vec3) [][]bool {
	edge := math.Inf(1)
	for i := range verts {
		for j := i + 1; j < len(verts); j++ {
			edge = math.Min(edge, verts[i].Sub(verts[j]).Len())
		}
	}

	adj := make([][]bool, len(verts))
	for i := range adj {
		adj[i] = make([]bool, len(verts))
	}
	for i := range verts {
		for j := i + 1; j < len(verts); j++ {
			if mgl64.FloatEqualThreshold(verts[i].Sub(verts[j]).Len(), edge, 1e-9) {
				adj[i][j], adj[j][i] = true, true
			}
		}
	}
	return adj
}

// triangleFaces returns every triple of mutually adjacent vertices. For the
// triangle-faced solids those are exactly the faces.
func triangleFaces(verts []mgl64.Vec3) [][]mgl64.Vec3 {
	adj := adjacency(verts)
	var faces [][]mgl64.Vec3
	for i := range verts {
		for j := i + 1; j < len(verts); j++ {
			if !adj[i][j] {
				continue
			}
			for k := j + 1; k < len(verts); k++ {
				if adj[i][k] && adj[j][k] {
					faces = append(faces, []mgl64.Vec3{verts[i], verts[j], verts[k]})
				}
			}
		}
	}
	return faces
}

// dualFaces builds the dual of a triangle-faced solid: each vertex of the
// base becomes a face whose corners are the centroids of the base faces
// around it, ordered by angle about the vertex.
func dualFaces(verts []mgl64.Vec3) [][]mgl64.Vec3 {
	base := triangleFaces(verts)
	var faces [][]mgl64.Vec3
	for _, v := range verts {
		var ring []mgl64.Vec3
		for _, f := range base {
			if slices.Contains(f, v) {
				ring = append(ring, f[0].Add(f[1]).Add(f[2]).Mul(1.0/3))
			}
		}
		if len(ring) < 3 {
			continue
		}

		n := v.Normalize()
		u := ring[0].Sub(n.Mul(ring[0].Dot(n))).Normalize()
		w := n.Cross(u)
		sort.Slice(ring, func(a, b int) bool {
			return math.Atan2(ring[a].Dot(w), ring[a].Dot(u)) < math.Atan2(ring[b].Dot(w), ring[b].Dot(u))
		})
		faces = append(faces, ring)
	}
	return faces
}

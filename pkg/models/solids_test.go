package models

import (
	"errors"
	"math"
	"testing"
)

func TestSolidTriangleCounts(t *testing.T) {
	tests := []struct {
		name      string
		triangles int
	}{
		{Tetrahedron, 4},
		{Cube, 12},
		{Octahedron, 8},
		{Dodecahedron, 36},
		{Icosahedron, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mesh, err := Solid(tc.name)
			if err != nil {
				t.Fatalf("Solid(%q): %v", tc.name, err)
			}
			if got := mesh.TriangleCount(); got != tc.triangles {
				t.Errorf("TriangleCount = %d, want %d", got, tc.triangles)
			}
		})
	}
}

func TestSolidsAreCenteredOnUnitSphere(t *testing.T) {
	for _, name := range SolidNames() {
		t.Run(name, func(t *testing.T) {
			mesh, err := Solid(name)
			if err != nil {
				t.Fatal(err)
			}
			for _, tri := range mesh.Triangles {
				for _, p := range tri.P {
					if d := math.Abs(p.Vec().Len() - 1); d > 1e-9 {
						t.Fatalf("vertex %+v is %v off the unit sphere", p, d)
					}
				}
			}
			if mesh.Center().Len() > 1e-9 {
				t.Errorf("Center = %v, want origin", mesh.Center())
			}
			if mesh.DrawDistMin >= 0 || mesh.DrawDistMax <= 0 {
				t.Errorf("draw distances = [%v, %v]", mesh.DrawDistMin, mesh.DrawDistMax)
			}
		})
	}
}

func TestSolidTrianglesAreNonDegenerate(t *testing.T) {
	for _, name := range SolidNames() {
		t.Run(name, func(t *testing.T) {
			mesh, err := Solid(name)
			if err != nil {
				t.Fatal(err)
			}
			for i, tri := range mesh.Triangles {
				a := tri.P[1].Vec().Sub(tri.P[0].Vec())
				b := tri.P[2].Vec().Sub(tri.P[0].Vec())
				cross := a.Y*b.Z - a.Z*b.Y
				cross2 := a.Z*b.X - a.X*b.Z
				cross3 := a.X*b.Y - a.Y*b.X
				if math.Abs(cross)+math.Abs(cross2)+math.Abs(cross3) < 1e-6 {
					t.Errorf("triangle %d is degenerate: %+v", i, tri.P)
				}
			}
		})
	}
}

func TestSolidUnknown(t *testing.T) {
	_, err := Solid("teapot")
	if !errors.Is(err, ErrUnknownSolid) {
		t.Errorf("err = %v, want ErrUnknownSolid", err)
	}
}

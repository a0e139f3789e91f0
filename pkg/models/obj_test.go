package models

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/tumble/pkg/math3d"
)

const cubeOBJ = `# cube
o Cube
v -1 -1 -1
v  1 -1 -1
v  1  1 -1
v -1  1 -1
v -1 -1  1
v  1 -1  1
v  1  1  1
v -1  1  1
vn 0 0 1
vt 0 0
f 1 2 3 4
f 5 8 7 6
f 1 5 6 2
f 2 6 7 3
f 3 7 8 4
f 5 1 4 8
`

func TestParseOBJCube(t *testing.T) {
	mesh, err := ParseOBJ("cube", strings.NewReader(cubeOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}

	if got := mesh.TriangleCount(); got != 12 {
		t.Fatalf("TriangleCount = %d, want 12", got)
	}

	// Every corner must be one of the eight input vertices.
	for i, tri := range mesh.Triangles {
		for j, p := range tri.P {
			if math.Abs(p.X) != 1 || math.Abs(p.Y) != 1 || math.Abs(p.Z) != 1 {
				t.Errorf("triangle %d corner %d = %+v, not a cube vertex", i, j, p)
			}
			if p.Intensity != White {
				t.Errorf("triangle %d corner %d intensity = %v, want %v", i, j, p.Intensity, White)
			}
		}
	}

	// Fan triangulation of "f 1 2 3 4" gives (1,2,3) and (1,3,4).
	first := mesh.Triangles[0]
	if first.P[0] != P3(-1, -1, -1) || first.P[1] != P3(1, -1, -1) || first.P[2] != P3(1, 1, -1) {
		t.Errorf("first triangle = %+v", first.P)
	}
	second := mesh.Triangles[1]
	if second.P[0] != P3(-1, -1, -1) || second.P[1] != P3(1, 1, -1) || second.P[2] != P3(-1, 1, -1) {
		t.Errorf("second triangle = %+v", second.P)
	}
}

func TestParseOBJDrawDistances(t *testing.T) {
	mesh, err := ParseOBJ("cube", strings.NewReader(cubeOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}

	if mesh.Center().Len() != 0 {
		t.Errorf("Center = %v, want origin", mesh.Center())
	}
	if mesh.DrawDistMin != -1 {
		t.Errorf("DrawDistMin = %v, want -1", mesh.DrawDistMin)
	}
	if math.Abs(mesh.DrawDistMax-1.1) > 1e-12 {
		t.Errorf("DrawDistMax = %v, want 1.1", mesh.DrawDistMax)
	}
}

func TestParseOBJBoundsIncludeUnreferencedVertices(t *testing.T) {
	input := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 10 10 10\nf 1 2 3\n"
	mesh, err := ParseOBJ("stray", strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}

	if mesh.TriangleCount() != 1 {
		t.Errorf("TriangleCount = %d, want 1", mesh.TriangleCount())
	}
	if mesh.BoundsMax != math3d.V3(10, 10, 10) {
		t.Errorf("BoundsMax = %v, want {10 10 10}", mesh.BoundsMax)
	}
	if mesh.DrawDistMin != -5 {
		t.Errorf("DrawDistMin = %v, want -5", mesh.DrawDistMin)
	}
	if math.Abs(mesh.DrawDistMax-5.5) > 1e-12 {
		t.Errorf("DrawDistMax = %v, want 5.5", mesh.DrawDistMax)
	}
}

func TestFinalizeBoundsFallsBackToTriangles(t *testing.T) {
	mesh := NewMesh("tri")
	mesh.AddTriangle(P3(0, 0, 0), P3(2, 0, 0), P3(0, 2, 0))
	if err := mesh.FinalizeBounds(nil); err != nil {
		t.Fatalf("FinalizeBounds: %v", err)
	}
	if mesh.BoundsMax != math3d.V3(2, 2, 0) {
		t.Errorf("BoundsMax = %v, want {2 2 0}", mesh.BoundsMax)
	}

	if err := NewMesh("empty").FinalizeBounds([]Point3{P3(1, 1, 1)}); !errors.Is(err, ErrNoGeometry) {
		t.Errorf("FinalizeBounds on empty mesh = %v, want ErrNoGeometry", err)
	}
}

func TestParseOBJFaceTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"bare indices", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n", 1},
		{"compound tokens", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1/1 2/2/2 3/3/3\n", 1},
		{"vertex and normal", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2//1 3//1\n", 1},
		{"negative indices", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n", 1},
		{"pentagon fan", "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nv -1 0 0\nf 1 2 3 4 5\n", 3},
		{"out of range face skipped", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\nf 1 2 3\n", 1},
		{"zero index skipped", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\nf 1 2 3\n", 1},
		{"bad vertex skipped", "v 0 0 0\nv 1 x 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n", 1},
		{"blank and unknown lines", "\n# comment\ng group\nv 0 0 0\n\nv 1 0 0\nv 0 1 0\nusemtl red\nf 1 2 3\n", 1},
		{"two-vertex face skipped", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2\nf 1 2 3\n", 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mesh, err := ParseOBJ(tc.name, strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("ParseOBJ: %v", err)
			}
			if got := mesh.TriangleCount(); got != tc.want {
				t.Errorf("TriangleCount = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestParseOBJNegativeIndicesAreRelative(t *testing.T) {
	input := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 5 5 5\nf -4 -3 -2\n"
	mesh, err := ParseOBJ("rel", strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	got := mesh.Triangles[0].P
	if got[0] != P3(0, 0, 0) || got[1] != P3(1, 0, 0) || got[2] != P3(0, 1, 0) {
		t.Errorf("triangle = %+v", got)
	}
}

func TestParseOBJNoFaces(t *testing.T) {
	_, err := ParseOBJ("empty", strings.NewReader("v 0 0 0\nv 1 1 1\n"))
	if !errors.Is(err, ErrNoGeometry) {
		t.Errorf("err = %v, want ErrNoGeometry", err)
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.obj")
	if err := os.WriteFile(path, []byte(cubeOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if mesh.Name != "cube.obj" {
		t.Errorf("Name = %q, want cube.obj", mesh.Name)
	}
	if mesh.TriangleCount() != 12 {
		t.Errorf("TriangleCount = %d, want 12", mesh.TriangleCount())
	}
}

func TestLoadOBJMissingFile(t *testing.T) {
	_, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestMeshClone(t *testing.T) {
	mesh, err := ParseOBJ("cube", strings.NewReader(cubeOBJ))
	if err != nil {
		t.Fatal(err)
	}
	clone := mesh.Clone()
	clone.Triangles[0].P[0].X = 42
	if mesh.Triangles[0].P[0].X == 42 {
		t.Error("Clone shares triangle storage with the original")
	}
}

package render

import (
	"math"
	"testing"
)

// newTestRasterizer creates a rasterizer over a cleared width×height grid
// with depth range [-1, 1].
func newTestRasterizer(width, height int) (*Rasterizer, *Framebuffer, *DepthBuffer) {
	fb := NewFramebuffer(width, height, ASCII.Background(), 0)
	depth := NewDepthBuffer(width, height)
	quant := NewQuantizer(-1, 1, len(ASCII), false)
	return NewRasterizer(fb, depth, quant, ASCII), fb, depth
}

func tri(x0, y0, x1, y1, x2, y2, z float64) [3]ScreenVertex {
	return [3]ScreenVertex{
		{X: x0, Y: y0, Depth: z, Intensity: z},
		{X: x1, Y: y1, Depth: z, Intensity: z},
		{X: x2, Y: y2, Depth: z, Intensity: z},
	}
}

func coverage(d *DepthBuffer) map[[2]int]bool {
	cells := make(map[[2]int]bool)
	for y := range d.Height {
		for x := range d.Width {
			if d.Written(x, y) {
				cells[[2]int{x, y}] = true
			}
		}
	}
	return cells
}

func TestOffscreenTriangleWritesNothing(t *testing.T) {
	tests := []struct {
		name string
		v    [3]ScreenVertex
	}{
		{"right", tri(41, 2, 60, 5, 50, 18, 0.5)},
		{"left", tri(-30, 2, -1, 5, -10, 18, 0.5)},
		{"above", tri(2, -9, 30, -1, 10, -4, 0.5)},
		{"below", tri(2, 21, 30, 25, 10, 30, 0.5)},
		{"too far", tri(5, 5, 30, 5, 10, 15, 1.5)},
		{"too near", tri(5, 5, 30, 5, 10, 15, -1.5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, _, depth := newTestRasterizer(40, 20)
			r.DrawTriangle(tc.v)
			if r.Stats.PixelsWritten != 0 {
				t.Errorf("PixelsWritten = %d, want 0", r.Stats.PixelsWritten)
			}
			if r.Stats.TrianglesCulled != 1 {
				t.Errorf("TrianglesCulled = %d, want 1", r.Stats.TrianglesCulled)
			}
			if n := len(coverage(depth)); n != 0 {
				t.Errorf("%d cells written", n)
			}
		})
	}
}

func TestWireframeIsSubsetOfFilled(t *testing.T) {
	triangles := []struct {
		name string
		v    [3]ScreenVertex
	}{
		{"flat", tri(3.2, 2.5, 35.7, 6.1, 12.4, 17.9, 0.25)},
		{"sloped", [3]ScreenVertex{
			{X: 5, Y: 1, Depth: -0.5, Intensity: -0.5},
			{X: 38, Y: 10, Depth: 0.9, Intensity: 0.9},
			{X: 2, Y: 19, Depth: 0.1, Intensity: 0.1},
		}},
		{"clipped", tri(-10, -5, 50, 3, 20, 30, 0)},
	}

	for _, tc := range triangles {
		for _, fillMode := range []FillMode{FillScanline, FillConcentric} {
			t.Run(tc.name+"/"+fillMode.String(), func(t *testing.T) {
				wire, wireFB, wireDepth := newTestRasterizer(40, 20)
				wire.Mode = DrawWireframe
				wire.DrawTriangle(tc.v)

				fill, fillFB, fillDepth := newTestRasterizer(40, 20)
				fill.Fill = fillMode
				fill.DrawTriangle(tc.v)

				edges := coverage(wireDepth)
				filled := coverage(fillDepth)
				if len(edges) == 0 {
					t.Fatal("wireframe drew nothing")
				}
				for c := range edges {
					if !filled[c] {
						t.Errorf("edge cell %v missing from filled triangle", c)
						continue
					}
					if !wireFB.At(c[0], c[1]).Equal(fillFB.At(c[0], c[1])) {
						t.Errorf("edge cell %v: wireframe %q, filled %q",
							c, wireFB.At(c[0], c[1]).Char, fillFB.At(c[0], c[1]).Char)
					}
					if wireDepth.At(c[0], c[1]) != fillDepth.At(c[0], c[1]) {
						t.Errorf("edge cell %v depth differs between modes", c)
					}
				}
				if len(filled) <= len(edges) {
					t.Errorf("filled covers %d cells, wireframe %d", len(filled), len(edges))
				}
			})
		}
	}
}

func TestOutlineMaskIsPerTriangle(t *testing.T) {
	// Two triangles share the edge x = 20. The nearer one's fill must still
	// replace the farther one's edge glyphs.
	r, fb, depth := newTestRasterizer(40, 20)
	far := tri(20, 2, 20, 18, 35, 10, -0.5)
	near := tri(10, 2, 30, 2, 20, 18, 0.75)
	r.DrawTriangle(far)
	r.DrawTriangle(near)

	// (20, 8) lies on the far triangle's outline and inside the near one.
	if got := depth.At(20, 8); got != 0.75 {
		t.Errorf("depth at (20, 8) = %v, want 0.75", got)
	}
	if got, want := fb.At(20, 8), r.quant.Glyph(ASCII, 0.75); !got.Equal(want) {
		t.Errorf("glyph at (20, 8) = %q, want %q", got.Char, want.Char)
	}
}

func TestConcentricFillIsBoundedForHugeTriangles(t *testing.T) {
	r, _, depth := newTestRasterizer(40, 20)
	if got := r.maxConcentricLines(); got != 120 {
		t.Errorf("maxConcentricLines = %d, want 120", got)
	}

	// One vertex a billion cells to the right; without the cap this walks a
	// billion nested lines.
	r.Fill = FillConcentric
	r.DrawTriangle(tri(0.5, 0.5, 0.5, 19.5, 1e9, 10, 0))
	if len(coverage(depth)) == 0 {
		t.Error("huge triangle drew nothing")
	}
}

func TestScanlineRowsAreContiguous(t *testing.T) {
	r, _, depth := newTestRasterizer(40, 20)
	r.DrawTriangle(tri(4.5, 1.5, 36.5, 9.5, 10.5, 18.5, 0))

	for y := 1; y <= 18; y++ {
		first, last := -1, -1
		for x := range 40 {
			if depth.Written(x, y) {
				if first < 0 {
					first = x
				}
				last = x
			}
		}
		if first < 0 {
			t.Errorf("row %d is empty", y)
			continue
		}
		for x := first; x <= last; x++ {
			if !depth.Written(x, y) {
				t.Errorf("row %d has a gap at column %d", y, x)
			}
		}
	}
}

func TestDegenerateTrianglesDoNotPanic(t *testing.T) {
	tests := []struct {
		name string
		v    [3]ScreenVertex
	}{
		{"point", tri(10, 10, 10, 10, 10, 10, 0)},
		{"horizontal line", tri(5, 10, 20, 10, 30, 10, 0)},
		{"vertical line", tri(5, 2, 5, 10, 5, 18, 0)},
		{"flat top", tri(5, 5, 30, 5, 15, 15, 0)},
		{"flat bottom", tri(15, 5, 5, 15, 30, 15, 0)},
	}

	for _, tc := range tests {
		for _, fill := range []FillMode{FillScanline, FillConcentric} {
			t.Run(tc.name+"/"+fill.String(), func(t *testing.T) {
				r, _, _ := newTestRasterizer(40, 20)
				r.Fill = fill
				r.DrawTriangle(tc.v)
			})
		}
	}
}

func TestNonFiniteTriangleIsCulled(t *testing.T) {
	r, _, depth := newTestRasterizer(40, 20)
	v := tri(5, 5, 30, 5, 15, 15, 0)
	v[1].Depth = math.NaN()
	r.DrawTriangle(v)
	if r.Stats.TrianglesCulled != 1 || len(coverage(depth)) != 0 {
		t.Errorf("non-finite triangle was drawn: %+v", r.Stats)
	}
}

func TestDepthTestIsStrict(t *testing.T) {
	r, fb, depth := newTestRasterizer(40, 20)

	r.DrawTriangle(tri(2, 2, 30, 2, 10, 15, 0.2))
	before := fb.At(10, 5)

	// Same depth, different intensity: must not overwrite.
	same := tri(2, 2, 30, 2, 10, 15, 0.2)
	for i := range same {
		same[i].Intensity = 0.9
	}
	r.DrawTriangle(same)
	if !fb.At(10, 5).Equal(before) {
		t.Error("equal depth replaced the stored glyph")
	}

	// Nearer wins.
	r.DrawTriangle(tri(2, 2, 30, 2, 10, 15, 0.6))
	if depth.At(10, 5) != 0.6 {
		t.Errorf("depth = %v, want 0.6", depth.At(10, 5))
	}
}

func TestDepthRangeIsEnforcedPerFragment(t *testing.T) {
	r, _, depth := newTestRasterizer(40, 20)
	// Depth runs from -3 on the left to 3 on the right. Only the middle
	// third lies inside [-1, 1].
	v := [3]ScreenVertex{
		{X: 0, Y: 2, Depth: -3},
		{X: 39.9, Y: 2, Depth: 3},
		{X: 0, Y: 18, Depth: -3},
	}
	r.DrawTriangle(v)

	for c := range coverage(depth) {
		z := depth.At(c[0], c[1])
		if z < -1 || z > 1 {
			t.Errorf("cell %v stored out-of-range depth %v", c, z)
		}
	}
	if r.Stats.PixelsRejected == 0 {
		t.Error("expected out-of-range fragments to be rejected")
	}
}

func TestDisabledDepthTestPaintsInOrder(t *testing.T) {
	r, _, depth := newTestRasterizer(40, 20)
	r.DepthTest = false

	r.DrawTriangle(tri(2, 2, 30, 2, 10, 15, 0.8))
	r.DrawTriangle(tri(2, 2, 30, 2, 10, 15, -0.5))
	if depth.At(10, 5) != -0.5 {
		t.Errorf("depth = %v, want the last painted -0.5", depth.At(10, 5))
	}
}

func TestClipSegment(t *testing.T) {
	tests := []struct {
		name   string
		a, b   ScreenVertex
		ok     bool
		lo, hi float64
	}{
		{"inside", ScreenVertex{X: 1, Y: 1}, ScreenVertex{X: 9, Y: 9}, true, 0, 1},
		{"outside", ScreenVertex{X: 20, Y: 1}, ScreenVertex{X: 30, Y: 9}, false, 0, 0},
		{"crossing", ScreenVertex{X: -11, Y: 5}, ScreenVertex{X: 21, Y: 5}, true, 0.3125, 0.6875},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi, ok := clipSegment(tc.a, tc.b, 10, 10)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && (lo != tc.lo || hi != tc.hi) {
				t.Errorf("range = [%v, %v], want [%v, %v]", lo, hi, tc.lo, tc.hi)
			}
		})
	}
}

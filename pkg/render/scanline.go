package render

import "math"

// fillScanline fills the triangle row by row. Vertices are sorted by Y
// (stable), the triangle is split at the middle vertex, and each integer row
// between the top and bottom vertex gets one span from the long edge to the
// active short edge with depth and intensity interpolated across it.
func (r *Rasterizer) fillScanline(v [3]ScreenVertex) {
	// simple bubble sort, stable for equal Y
	if v[0].Y > v[1].Y {
		v[0], v[1] = v[1], v[0]
	}
	if v[1].Y > v[2].Y {
		v[1], v[2] = v[2], v[1]
	}
	if v[0].Y > v[1].Y {
		v[0], v[1] = v[1], v[0]
	}
	top, mid, bot := v[0], v[1], v[2]

	first := max(0, int(math.Floor(top.Y)))
	last := min(r.Height()-1, int(math.Floor(math.Min(bot.Y, float64(r.Height())))))

	for row := first; row <= last; row++ {
		// Sample at the row center, kept inside the triangle's Y range.
		y := math.Max(top.Y, math.Min(bot.Y, float64(row)+0.5))

		long := edgeAt(top, bot, y)
		var short ScreenVertex
		if y < mid.Y {
			short = edgeAt(top, mid, y)
		} else {
			short = edgeAt(mid, bot, y)
		}
		r.span(row, long, short)
	}
}

// edgeAt interpolates the edge a→b (a.Y ≤ b.Y) at height y. Horizontal
// edges yield a.
func edgeAt(a, b ScreenVertex, y float64) ScreenVertex {
	dy := b.Y - a.Y
	if dy == 0 {
		return a
	}
	return lerpVertex(a, b, (y-a.Y)/dy)
}

// span plots every cell of row whose column lies between the two ends.
func (r *Rasterizer) span(row int, a, b ScreenVertex) {
	if a.X > b.X {
		a, b = b, a
	}

	w := float64(r.Width())
	first := max(0, int(math.Floor(math.Max(a.X, -1))))
	last := min(r.Width()-1, int(math.Floor(math.Min(b.X, w))))

	dx := b.X - a.X
	for col := first; col <= last; col++ {
		t := 0.0
		if dx > 0 {
			t = math.Max(0, math.Min(1, (float64(col)+0.5-a.X)/dx))
		}
		r.plot(
			float64(col)+0.5,
			float64(row)+0.5,
			a.Depth+(b.Depth-a.Depth)*t,
			a.Intensity+(b.Intensity-a.Intensity)*t,
		)
	}
}

// clipSegment returns the parameter range [lo, hi] of a→b that lies within
// the grid extended by one cell on every side.
func clipSegment(a, b ScreenVertex, width, height float64) (lo, hi float64, ok bool) {
	lo, hi = 0, 1
	dx, dy := b.X-a.X, b.Y-a.Y

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > hi {
				return false
			}
			lo = math.Max(lo, t)
		} else {
			if t < lo {
				return false
			}
			hi = math.Min(hi, t)
		}
		return true
	}

	ok = clip(-dx, a.X+1) &&
		clip(dx, width+1-a.X) &&
		clip(-dy, a.Y+1) &&
		clip(dy, height+1-a.Y)
	return lo, hi, ok && lo <= hi
}

package math3d

import "math"

// Rotation is the camera's three-angle composite rotation with the sines and
// cosines precomputed.
//
// The composite is not a product of the usual X/Y/Z rotation matrices. It is
// a fixed closed form and the angle order matters:
//
//	x' = cy·(sz·y + cz·x) − sy·z
//	y' = sx·(cy·z + sy·(sz·y + cz·x)) + cx·(cz·y − sz·x)
//	z' = cx·(cy·z + sy·(sz·y + cz·x)) − sx·(cz·y − sz·x)
//
// where sx, cx come from U, sy, cy from V and sz, cz from W.
type Rotation struct {
	sx, cx float64
	sy, cy float64
	sz, cz float64
}

// NewRotation precomputes the composite rotation for angles u, v, w (radians).
func NewRotation(u, v, w float64) Rotation {
	return Rotation{
		sx: math.Sin(u), cx: math.Cos(u),
		sy: math.Sin(v), cy: math.Cos(v),
		sz: math.Sin(w), cz: math.Cos(w),
	}
}

// Apply rotates p.
func (r Rotation) Apply(p Vec3) Vec3 {
	// shared subterms
	a := r.sz*p.Y + r.cz*p.X
	b := r.cz*p.Y - r.sz*p.X
	c := r.cy*p.Z + r.sy*a

	return Vec3{
		X: r.cy*a - r.sy*p.Z,
		Y: r.sx*c + r.cx*b,
		Z: r.cx*c - r.sx*b,
	}
}

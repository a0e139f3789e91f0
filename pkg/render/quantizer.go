package render

import "math"

// Quantizer maps a continuous intensity onto a gradient index.
//
// The index is floor(d·N − 0.5) for d = (v − Min)/(Max − Min), clamped into
// [0, N−1]. With Dither set, the fractional part of d·N − 0.5 is added to a
// running error and the index is bumped by one whenever that error reaches
// 1. The error is shared by every call until Reset, so results depend on
// visit order.
type Quantizer struct {
	Min    float64
	Max    float64
	Levels int
	Dither bool

	errAcc float64 // running dither error
}

// NewQuantizer creates a quantizer over [min, max] with the given number of
// levels.
func NewQuantizer(min, max float64, levels int, dither bool) *Quantizer {
	return &Quantizer{
		Min:    min,
		Max:    max,
		Levels: levels,
		Dither: dither,
	}
}

// Index returns the gradient index for v.
func (q *Quantizer) Index(v float64) int {
	if q.Levels <= 1 {
		return 0
	}

	span := q.Max - q.Min
	if span <= 0 || math.IsNaN(v) {
		return 0
	}

	scaled := (v-q.Min)/span*float64(q.Levels) - 0.5
	if math.IsInf(scaled, 0) {
		return q.clamp(scaled)
	}

	floor := math.Floor(scaled)
	idx := floor
	if q.Dither {
		q.errAcc += scaled - floor
		if q.errAcc >= 1 {
			q.errAcc--
			idx++
		}
	}
	return q.clamp(idx)
}

func (q *Quantizer) clamp(idx float64) int {
	switch {
	case idx < 0:
		return 0
	case idx > float64(q.Levels-1):
		return q.Levels - 1
	default:
		return int(idx)
	}
}

// Glyph returns the gradient glyph for v.
func (q *Quantizer) Glyph(g Gradient, v float64) Glyph {
	if len(g) == 0 {
		return Glyph{}
	}
	return g[min(q.Index(v), len(g)-1)]
}

// Error returns the running dither error.
func (q *Quantizer) Error() float64 {
	return q.errAcc
}

// Reset clears the dither error. Call it only when a session starts.
func (q *Quantizer) Reset() {
	q.errAcc = 0
}

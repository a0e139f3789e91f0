// Package anim drives a render.Renderer through a sequence of frames: it
// spins the camera, paces live output and hands every frame to a Sink.
package anim

// Frames yields consecutive frame indices starting at 0. A non-positive
// count never ends.
type Frames struct {
	count int
	next  int
}

// NewFrames creates a sequence of count frames, or an unbounded one when
// count ≤ 0.
func NewFrames(count int) *Frames {
	return &Frames{count: count}
}

// Next returns the next frame index, or false once the sequence is done.
func (f *Frames) Next() (int, bool) {
	if f.count > 0 && f.next >= f.count {
		return f.next, false
	}
	i := f.next
	f.next++
	return i, true
}

// Infinite reports whether the sequence is unbounded.
func (f *Frames) Infinite() bool {
	return f.count <= 0
}

// Emitted returns how many indices Next has handed out.
func (f *Frames) Emitted() int {
	return f.next
}

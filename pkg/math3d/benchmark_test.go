package math3d

import (
	"testing"
)

func BenchmarkRotationApply(b *testing.B) {
	r := NewRotation(0.3, 1.2, -0.7)
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = r.Apply(v)
	}
}

// NewRotation runs once per frame, Apply once per vertex.
func BenchmarkNewRotation(b *testing.B) {
	for b.Loop() {
		_ = NewRotation(0.3, 1.2, -0.7)
	}
}

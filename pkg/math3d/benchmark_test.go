package math3d

import (
	"math"
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := Scale(V3(2, 2, 2))

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(Scale(V3(2, 2, 2)))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkLookAt(b *testing.B) {
	eye := V3(1, 0.5, 2)
	target := V3(0, 0, 0)
	up := V3(0, 1, 0)

	for b.Loop() {
		_ = LookAt(eye, target, up)
	}
}

func BenchmarkViewProjection(b *testing.B) {
	// Same composition the vertex stage performs per vertex
	eye := V3(1, 0.5, 2)
	view := LookAt(eye, Zero3(), Up())
	proj := SimplePerspective(math.Pi/4, eye.Len())
	vp := Viewport(100, 100, 600, 600, 255)
	p := Point(V3(0.5, 0.5, 0.5))

	for b.Loop() {
		clip := proj.MulVec4(view.MulVec4(p))
		_ = vp.MulVec4(clip.PerspectiveDivide())
	}
}

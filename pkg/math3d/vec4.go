package math3d

import "math"

// WEpsilon is the smallest |w| the perspective divide will divide by.
const WEpsilon = 1e-6

// Vec4 represents a homogeneous 3D point or a 4D vector.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// V4FromV3 creates a Vec4 from Vec3 with specified W.
func V4FromV3(v Vec3, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// Point lifts v to a homogeneous point (W = 1).
func Point(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}

// Vec3 returns the Vec3 portion (ignoring W).
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// PerspectiveDivide divides X, Y and Z by W and resets W to 1.
// A |W| below WEpsilon is treated as 1.
func (v Vec4) PerspectiveDivide() Vec4 {
	w := v.W
	if math.Abs(w) < WEpsilon {
		w = 1
	}
	return Vec4{v.X / w, v.Y / w, v.Z / w, 1}
}

// Scale returns the scalar product.
func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Dot returns the dot product.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Vec4) Dot(b Vec4) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

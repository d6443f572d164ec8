// Package math3d provides the vector and matrix kernel used by the scanline
// renderer.
package math3d

import "math"

// NormEpsilon is the smallest norm Normalize will divide by.
const NormEpsilon = 1e-6

// Number is the set of element types a vector can carry.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Vector3 is a 3-component vector over a numeric element type.
type Vector3[T Number] struct {
	X, Y, Z T
}

// Vec3 is the float vector used throughout the pipeline.
type Vec3 = Vector3[float64]

// Vec3i is an integer vector, used for rounded screen coordinates.
type Vec3i = Vector3[int]

// V3 creates a new Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// V3i creates a new Vec3i.
func V3i(x, y, z int) Vec3i {
	return Vec3i{x, y, z}
}

// Zero3 returns the zero vector.
func Zero3() Vec3 {
	return Vec3{}
}

// Up returns the world up vector (0, 1, 0).
func Up() Vec3 {
	return Vec3{0, 1, 0}
}

// Add returns the vector sum a + b.
func (a Vector3[T]) Add(b Vector3[T]) Vector3[T] {
	return Vector3[T]{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the vector difference a - b.
func (a Vector3[T]) Sub(b Vector3[T]) Vector3[T] {
	return Vector3[T]{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Mul returns the component-wise product a * b.
func (a Vector3[T]) Mul(b Vector3[T]) Vector3[T] {
	return Vector3[T]{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

// Scale returns the scalar product a * s.
func (a Vector3[T]) Scale(s float64) Vector3[T] {
	return Vector3[T]{
		T(float64(a.X) * s),
		T(float64(a.Y) * s),
		T(float64(a.Z) * s),
	}
}

// Dot returns the dot product a · b.
func (a Vector3[T]) Dot(b Vector3[T]) T {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vector3[T]) Cross(b Vector3[T]) Vector3[T] {
	return Vector3[T]{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the Euclidean norm of the vector.
func (a Vector3[T]) Len() float64 {
	x, y, z := float64(a.X), float64(a.Y), float64(a.Z)
	return math.Sqrt(x*x + y*y + z*z)
}

// Normalize returns the unit vector in the same direction.
// Vectors with a norm at or below NormEpsilon are returned unchanged.
func (a Vector3[T]) Normalize() Vector3[T] {
	l := a.Len()
	if l <= NormEpsilon {
		return a
	}
	return Vector3[T]{
		T(float64(a.X) / l),
		T(float64(a.Y) / l),
		T(float64(a.Z) / l),
	}
}

// NormalizeInPlace normalizes v and returns it for chaining.
func (a *Vector3[T]) NormalizeInPlace() *Vector3[T] {
	*a = a.Normalize()
	return a
}

// Negate returns the negated vector.
func (a Vector3[T]) Negate() Vector3[T] {
	return Vector3[T]{-a.X, -a.Y, -a.Z}
}

// Distance returns the distance between two points.
func (a Vector3[T]) Distance(b Vector3[T]) float64 {
	return a.Sub(b).Len()
}

// Min returns the component-wise minimum.
func (a Vector3[T]) Min(b Vector3[T]) Vector3[T] {
	return Vector3[T]{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)}
}

// Max returns the component-wise maximum.
func (a Vector3[T]) Max(b Vector3[T]) Vector3[T] {
	return Vector3[T]{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)}
}

// At returns component i (0 = X, 1 = Y, anything else = Z).
func (a Vector3[T]) At(i int) T {
	switch i {
	case 0:
		return a.X
	case 1:
		return a.Y
	default:
		return a.Z
	}
}

// RoundVec3 converts a float vector to integers, rounding half away from zero.
func RoundVec3(v Vec3) Vec3i {
	return Vec3i{int(math.Round(v.X)), int(math.Round(v.Y)), int(math.Round(v.Z))}
}

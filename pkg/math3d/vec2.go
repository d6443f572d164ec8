package math3d

import "math"

// Vector2 is a 2-component vector over a numeric element type.
type Vector2[T Number] struct {
	X, Y T
}

// Vec2 is a float 2D vector (texture coordinates, screen points).
type Vec2 = Vector2[float64]

// Vec2i is an integer 2D vector (texel coordinates).
type Vec2i = Vector2[int]

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// V2i creates a new Vec2i.
func V2i(x, y int) Vec2i {
	return Vec2i{x, y}
}

// Add returns the vector sum a + b.
func (a Vector2[T]) Add(b Vector2[T]) Vector2[T] {
	return Vector2[T]{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Vector2[T]) Sub(b Vector2[T]) Vector2[T] {
	return Vector2[T]{a.X - b.X, a.Y - b.Y}
}

// Scale returns the scalar product a * s.
func (a Vector2[T]) Scale(s float64) Vector2[T] {
	return Vector2[T]{T(float64(a.X) * s), T(float64(a.Y) * s)}
}

// Dot returns the dot product a · b.
func (a Vector2[T]) Dot(b Vector2[T]) T {
	return a.X*b.X + a.Y*b.Y
}

// Len returns the Euclidean norm of the vector.
func (a Vector2[T]) Len() float64 {
	x, y := float64(a.X), float64(a.Y)
	return math.Sqrt(x*x + y*y)
}

// Normalize returns the unit vector, or a unchanged if its norm is at or
// below NormEpsilon.
func (a Vector2[T]) Normalize() Vector2[T] {
	l := a.Len()
	if l <= NormEpsilon {
		return a
	}
	return Vector2[T]{T(float64(a.X) / l), T(float64(a.Y) / l)}
}

// Truncate converts a float vector to integers, truncating toward zero.
func Truncate(v Vec2) Vec2i {
	return Vec2i{int(v.X), int(v.Y)}
}

// ToVec2 converts any numeric 2D vector to a float vector.
func ToVec2[T Number](v Vector2[T]) Vec2 {
	return Vec2{float64(v.X), float64(v.Y)}
}

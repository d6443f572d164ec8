package math3d

import "math"

// Mat4 is a 4x4 matrix stored in row-major order: m[row][col].
//
// For an affine transform:
// | Xx Yx Zx Tx |   X,Y,Z = basis vectors (rotation/scale)
// | Xy Yy Zy Ty |   T = translation
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
type Mat4 [4][4]float64

// Identity returns a matrix with ones on the first n diagonal entries and
// zeros everywhere else. n is clamped to 4; Identity(4) is the identity.
func Identity(n int) Mat4 {
	var m Mat4
	for i := 0; i < n && i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity(4)
	m[0][3] = v.X
	m[1][3] = v.Y
	m[2][3] = v.Z
	return m
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	m := Identity(4)
	m[0][0] = v.X
	m[1][1] = v.Y
	m[2][2] = v.Z
	return m
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for i := range 4 {
		for j := range 4 {
			for k := range 4 {
				m[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return m
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3]*v.W,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3]*v.W,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3]*v.W,
		m[3][0]*v.X + m[3][1]*v.Y + m[3][2]*v.Z + m[3][3]*v.W,
	}
}

// MulDir transforms v as a direction (w=0, no translation).
func (m Mat4) MulDir(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for i := range 4 {
		for j := range 4 {
			t[i][j] = m[j][i]
		}
	}
	return t
}

// Row returns row i as a Vec4.
func (m Mat4) Row(i int) Vec4 {
	return Vec4{m[i][0], m[i][1], m[i][2], m[i][3]}
}

// LookAt creates a right-handed view matrix for a camera at eye looking at
// center. The rows of the upper 3x3 block are the camera's x, y and z axes,
// with z pointing from center back towards eye.
//
// up must not be parallel to eye-center.
func LookAt(eye, center, up Vec3) Mat4 {
	z := eye.Sub(center).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x).Normalize()

	m := Identity(4)
	for i, axis := range [3]Vec3{x, y, z} {
		m[i][0] = axis.X
		m[i][1] = axis.Y
		m[i][2] = axis.Z
		m[i][3] = -axis.Dot(eye)
	}
	return m
}

// SimplePerspective is the single-term projection used by the reference
// renderer: both screen axes are scaled by 1/tan(fovy/2) and w becomes
// 1 - z/distance. There is no near/far remapping; z passes through.
// fovy is in radians.
func SimplePerspective(fovy, distance float64) Mat4 {
	s := 1.0 / math.Tan(fovy/2)
	m := Identity(4)
	m[0][0] = s
	m[1][1] = s
	m[3][2] = -1.0 / distance
	return m
}

// Perspective creates an OpenGL-style frustum projection.
// fovy is vertical field of view in radians.
// aspect is width/height.
// near and far are clipping planes; NDC z runs from -1 at near to 1 at far.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovy/2)
	nf := 1.0 / (near - far)

	var m Mat4
	m[0][0] = f / aspect
	m[1][1] = f
	m[2][2] = (far + near) * nf
	m[2][3] = 2 * far * near * nf
	m[3][2] = -1
	return m
}

// Viewport maps normalized device coordinates onto the pixel rectangle
// (x, y, w, h) and z from [-1, 1] onto [0, depth].
func Viewport(x, y, w, h int, depth float64) Mat4 {
	m := Identity(4)
	m[0][0] = float64(w) / 2
	m[0][3] = float64(x) + float64(w)/2
	m[1][1] = float64(h) / 2
	m[1][3] = float64(y) + float64(h)/2
	m[2][2] = depth / 2
	m[2][3] = depth / 2
	return m
}

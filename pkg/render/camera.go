package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Projection selects how the camera builds its projection matrix.
type Projection int

const (
	// ProjectionSimple scales x and y by 1/tan(fov/2) and adds a single
	// -1/distance perspective term. Near and far are ignored.
	ProjectionSimple Projection = iota
	// ProjectionFrustum is an OpenGL-style frustum that remaps near..far
	// onto NDC z in [-1, 1].
	ProjectionFrustum
)

// Camera represents a look-at camera with a perspective projection.
type Camera struct {
	// Extrinsics
	Position math3d.Vec3
	Target   math3d.Vec3
	Up       math3d.Vec3

	// Intrinsics
	FOV    float64 // Vertical field of view in degrees
	Aspect float64 // Width / Height
	Near   float64 // Near plane distance
	Far    float64 // Far plane distance

	Projection Projection
}

// NewCamera creates a camera using the simplified projection.
func NewCamera(position, target, up math3d.Vec3, fovDeg, aspect, near, far float64) *Camera {
	return &Camera{
		Position: position,
		Target:   target,
		Up:       up,
		FOV:      fovDeg,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
}

// DefaultCamera returns the stock camera: at (1, 0.5, 2) looking at the
// origin, 45 degree field of view, square aspect.
func DefaultCamera() *Camera {
	return NewCamera(math3d.V3(1, 0.5, 2), math3d.Zero3(), math3d.Up(), 45, 1, 0.1, 100)
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(p math3d.Vec3) {
	c.Position = p
}

// SetTarget sets the point the camera looks at.
func (c *Camera) SetTarget(t math3d.Vec3) {
	c.Target = t
}

// SetUp sets the up hint used to orthonormalize the view basis.
func (c *Camera) SetUp(u math3d.Vec3) {
	c.Up = u
}

// SetPerspective sets all intrinsic parameters at once.
func (c *Camera) SetPerspective(fovDeg, aspect, near, far float64) {
	c.FOV = fovDeg
	c.Aspect = aspect
	c.Near = near
	c.Far = far
}

// Distance returns the distance from the camera to its target.
func (c *Camera) Distance() float64 {
	return c.Position.Distance(c.Target)
}

// Degenerate reports whether Up is (nearly) parallel to the view direction,
// in which case the view basis is undefined.
func (c *Camera) Degenerate() bool {
	dir := c.Position.Sub(c.Target).Normalize()
	return c.Up.Normalize().Cross(dir).Len() < 1e-6
}

// ViewMatrix returns the look-at view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the projection matrix for the selected mode.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	fovy := c.FOV * math.Pi / 180
	if c.Projection == ProjectionFrustum {
		return math3d.Perspective(fovy, c.Aspect, c.Near, c.Far)
	}
	return math3d.SimplePerspective(fovy, c.Distance())
}

// DepthFunc returns the depth test that matches the projection's sign
// convention: larger z is nearer for the simplified projection, smaller z
// for the frustum.
func (c *Camera) DepthFunc() DepthFunc {
	if c.Projection == ProjectionFrustum {
		return DepthLess
	}
	return DepthGreater
}

// Orbit places the camera on a sphere around its target at the current
// distance. yaw rotates around +Y starting from +Z; pitch lifts toward +Y.
func (c *Camera) Orbit(yaw, pitch float64) {
	// Clamp pitch so Up never lines up with the view direction
	const maxPitch = math.Pi/2 - 0.01
	pitch = max(-maxPitch, min(maxPitch, pitch))

	d := c.Distance()
	c.Position = c.Target.Add(math3d.V3(
		d*math.Cos(pitch)*math.Sin(yaw),
		d*math.Sin(pitch),
		d*math.Cos(pitch)*math.Cos(yaw),
	))
}

// OrbitAngles returns the yaw and pitch of the camera around its target.
func (c *Camera) OrbitAngles() (yaw, pitch float64) {
	dir := c.Position.Sub(c.Target).Normalize()
	return math.Atan2(dir.X, dir.Z), math.Asin(dir.Y)
}

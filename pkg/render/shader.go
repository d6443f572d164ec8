package render

import "github.com/taigrr/scanline/pkg/math3d"

// Shader is the two-stage shading contract. Vertex runs once per triangle
// corner; Fragment runs once per covered pixel that passed the depth test.
// Implementations hold only uniforms, so one instance may serve every face.
type Shader interface {
	// Vertex returns the pixel-space position (x, y, depth) of corner nth of
	// face, together with the per-corner values Fragment interpolates.
	Vertex(face, nth int) (math3d.Vec3, Varying)
	// Fragment shades a pixel from the triangle's varyings and barycentric
	// weights. discard=true means the pixel must not be written.
	Fragment(v *Varyings, bar math3d.Vec3) (c Color, discard bool)
}

// Varying holds the per-corner values produced by a vertex stage.
type Varying struct {
	WorldPos  math3d.Vec3
	Normal    math3d.Vec3
	Texel     math3d.Vec2 // Texel coordinate, not normalized UV
	Intensity float64     // Per-vertex light, used by Gouraud shading
}

// Varyings is the scratch state of exactly one triangle.
type Varyings [3]Varying

// WorldPos interpolates the corner positions.
func (v *Varyings) WorldPos(bar math3d.Vec3) math3d.Vec3 {
	return v[0].WorldPos.Scale(bar.X).
		Add(v[1].WorldPos.Scale(bar.Y)).
		Add(v[2].WorldPos.Scale(bar.Z))
}

// Normal interpolates the corner normals and renormalizes the result.
func (v *Varyings) Normal(bar math3d.Vec3) math3d.Vec3 {
	return v[0].Normal.Scale(bar.X).
		Add(v[1].Normal.Scale(bar.Y)).
		Add(v[2].Normal.Scale(bar.Z)).
		Normalize()
}

// Texel interpolates the corner texel coordinates and truncates them.
func (v *Varyings) Texel(bar math3d.Vec3) math3d.Vec2i {
	return math3d.Truncate(v[0].Texel.Scale(bar.X).
		Add(v[1].Texel.Scale(bar.Y)).
		Add(v[2].Texel.Scale(bar.Z)))
}

// Intensity interpolates the per-vertex light.
func (v *Varyings) Intensity(bar math3d.Vec3) float64 {
	return v[0].Intensity*bar.X + v[1].Intensity*bar.Y + v[2].Intensity*bar.Z
}

// Transform holds the vertex-stage uniforms shared by the shaders.
type Transform struct {
	ModelView  math3d.Mat4
	Projection math3d.Mat4
	Viewport   math3d.Mat4

	// When Normalize is set, model positions become (p - Center) * Scale
	// before anything else sees them.
	Normalize bool
	Center    math3d.Vec3
	Scale     float64
}

// NewTransform builds the uniforms for a camera and viewport.
func NewTransform(cam *Camera, viewport math3d.Mat4) Transform {
	return Transform{
		ModelView:  cam.ViewMatrix(),
		Projection: cam.ProjectionMatrix(),
		Viewport:   viewport,
		Scale:      1,
	}
}

// Recenter applies the optional model-space normalization.
func (t *Transform) Recenter(p math3d.Vec3) math3d.Vec3 {
	if !t.Normalize {
		return p
	}
	return p.Sub(t.Center).Scale(t.Scale)
}

// Project maps a (recentered) model-space point to pixel space: view,
// projection, guarded perspective divide, then viewport.
func (t *Transform) Project(p math3d.Vec3) math3d.Vec3 {
	clip := t.Projection.MulVec4(t.ModelView.MulVec4(math3d.Point(p)))
	return t.Viewport.MulVec4(clip.PerspectiveDivide()).Vec3()
}

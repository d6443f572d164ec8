package render

import "github.com/taigrr/scanline/pkg/math3d"

// GouraudShader computes lighting once per vertex and interpolates the
// intensity across the triangle. The texture is still sampled per fragment.
type GouraudShader struct {
	Model     Model
	Transform Transform
	Light     Lighting
}

// NewGouraudShader creates a Gouraud shader. The light direction is normalized.
func NewGouraudShader(model Model, t Transform, light Lighting) *GouraudShader {
	light.Dir = light.Dir.Normalize()
	return &GouraudShader{Model: model, Transform: t, Light: light}
}

// Vertex implements Shader.
func (s *GouraudShader) Vertex(face, nth int) (math3d.Vec3, Varying) {
	screen, v := vertexStage(s.Model, &s.Transform, face, nth)
	v.Intensity = s.Light.Intensity(v.WorldPos, v.Normal.Normalize())
	return screen, v
}

// Fragment implements Shader. It never discards.
func (s *GouraudShader) Fragment(v *Varyings, bar math3d.Vec3) (Color, bool) {
	base := s.Model.SampleDiffuse(v.Texel(bar))
	return MultiplyColor(base, v.Intensity(bar)), false
}

package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Lighting holds the single directional light and its Phong coefficients.
type Lighting struct {
	Dir       math3d.Vec3 // Normalized by the shader constructors
	Eye       math3d.Vec3
	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64
}

// DefaultLighting returns the light (1, -1, 1) with ambient 0.5, diffuse 1,
// specular 0.6 and shininess 32, seen from eye.
func DefaultLighting(eye math3d.Vec3) Lighting {
	return Lighting{
		Dir:       math3d.V3(1, -1, 1),
		Eye:       eye,
		Ambient:   0.5,
		Diffuse:   1.0,
		Specular:  0.6,
		Shininess: 32,
	}
}

// Intensity evaluates ambient + kd*max(0, N.L) + ks*max(0, R.V)^shininess
// at point p with unit normal n.
func (l Lighting) Intensity(p, n math3d.Vec3) float64 {
	lightDir := l.Dir
	view := l.Eye.Sub(p).Normalize()
	nl := n.Dot(lightDir)
	r := n.Scale(2 * nl).Sub(lightDir).Normalize()

	diff := math.Max(0, nl)
	spec := math.Pow(math.Max(0, r.Dot(view)), l.Shininess)
	return l.Ambient + l.Diffuse*diff + l.Specular*spec
}

// vertexStage is the shared vertex stage: fetch corner attributes, recenter,
// project.
func vertexStage(model Model, t *Transform, face, nth int) (math3d.Vec3, Varying) {
	idx := model.Face(face)[nth]
	p := t.Recenter(model.Vertex(idx))
	v := Varying{
		WorldPos: p,
		Normal:   model.Normal(face, nth),
		Texel:    math3d.ToVec2(model.TexCoord(face, nth)),
	}
	return t.Project(p), v
}

// PhongShader lights every fragment from the interpolated normal.
type PhongShader struct {
	Model     Model
	Transform Transform
	Light     Lighting
}

// NewPhongShader creates a Phong shader. The light direction is normalized.
func NewPhongShader(model Model, t Transform, light Lighting) *PhongShader {
	light.Dir = light.Dir.Normalize()
	return &PhongShader{Model: model, Transform: t, Light: light}
}

// Vertex implements Shader.
func (s *PhongShader) Vertex(face, nth int) (math3d.Vec3, Varying) {
	return vertexStage(s.Model, &s.Transform, face, nth)
}

// Fragment implements Shader. It never discards.
func (s *PhongShader) Fragment(v *Varyings, bar math3d.Vec3) (Color, bool) {
	p := v.WorldPos(bar)
	n := v.Normal(bar)
	base := s.Model.SampleDiffuse(v.Texel(bar))
	return MultiplyColor(base, s.Light.Intensity(p, n)), false
}

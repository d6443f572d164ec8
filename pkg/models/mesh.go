// Package models provides the triangle meshes the scanline renderer draws.
package models

import (
	"image/color"

	"github.com/taigrr/scanline/pkg/math3d"
)

// DefaultBaseColor is the surface colour of meshes without a diffuse map.
var DefaultBaseColor = color.RGBA{200, 200, 200, 255}

// Mesh represents an indexed triangle mesh with per-corner attributes.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3
	Faces     []Face
	Materials []Material

	// Diffuse is sampled by SampleDiffuse; BaseColor is used when it is nil.
	Diffuse   *Texture
	BaseColor color.RGBA

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face represents a triangle with vertex indices and per-corner attributes.
type Face struct {
	V        [3]int         // Indices into Mesh.Vertices
	Normals  [3]math3d.Vec3 // Normal at each corner
	UVs      [3]math3d.Vec2 // Texture coordinates in 0-1, V=0 at the bottom
	Material int            // Index into Mesh.Materials (-1 for no material)
}

// Material represents a PBR material from GLTF.
type Material struct {
	Name      string
	BaseColor [4]float64 // RGBA in 0-1 range
	Metallic  float64    // 0 = dielectric, 1 = metal
	Roughness float64    // 0 = smooth, 1 = rough
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Vertices:  make([]math3d.Vec3, 0),
		Faces:     make([]Face, 0),
		BaseColor: DefaultBaseColor,
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// NormalizeScale returns the factor that fits the largest bounding box
// dimension into [-1, 1]. Empty or flat-to-a-point meshes return 1.
func (m *Mesh) NormalizeScale() float64 {
	size := m.Size()
	maxDim := max(size.X, size.Y, size.Z)
	if maxDim <= 0 {
		return 1
	}
	return 2.0 / maxDim
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of triangles.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// Vertex returns the model-space position of vertex i.
func (m *Mesh) Vertex(i int) math3d.Vec3 {
	return m.Vertices[i]
}

// Face returns the vertex indices of face i.
func (m *Mesh) Face(i int) [3]int {
	return m.Faces[i].V
}

// Normal returns the normal at corner nth of face.
func (m *Mesh) Normal(face, nth int) math3d.Vec3 {
	return m.Faces[face].Normals[nth]
}

// TexCoord returns the texel coordinate at corner nth of face: the corner's
// UV scaled by the diffuse map size and truncated. Without a diffuse map
// every corner maps to texel (0, 0).
func (m *Mesh) TexCoord(face, nth int) math3d.Vec2i {
	if m.Diffuse == nil {
		return math3d.Vec2i{}
	}
	uv := m.Faces[face].UVs[nth]
	return math3d.V2i(int(uv.X*float64(m.Diffuse.Width)), int(uv.Y*float64(m.Diffuse.Height)))
}

// SampleDiffuse returns the diffuse colour at a texel coordinate, or the
// mesh base colour when no diffuse map is attached.
func (m *Mesh) SampleDiffuse(texel math3d.Vec2i) color.RGBA {
	if m.Diffuse == nil {
		return m.BaseColor
	}
	return m.Diffuse.Texel(texel)
}

// HasNormals reports whether any corner carries a non-zero normal.
func (m *Mesh) HasNormals() bool {
	for _, f := range m.Faces {
		for _, n := range f.Normals {
			if n.Len() > 0.001 {
				return true
			}
		}
	}
	return false
}

// faceNormal returns the unit normal of face f from its winding.
func (m *Mesh) faceNormal(f Face) math3d.Vec3 {
	v0 := m.Vertices[f.V[0]]
	v1 := m.Vertices[f.V[1]]
	v2 := m.Vertices[f.V[2]]
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
}

// CalculateNormals assigns every corner its face normal (flat shading).
func (m *Mesh) CalculateNormals() {
	for i := range m.Faces {
		n := m.faceNormal(m.Faces[i])
		m.Faces[i].Normals = [3]math3d.Vec3{n, n, n}
	}
}

// CalculateSmoothNormals averages area-weighted face normals per vertex.
func (m *Mesh) CalculateSmoothNormals() {
	acc := make([]math3d.Vec3, len(m.Vertices))

	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]]
		v1 := m.Vertices[f.V[1]]
		v2 := m.Vertices[f.V[2]]
		normal := v1.Sub(v0).Cross(v2.Sub(v0)) // Don't normalize yet

		for _, vi := range f.V {
			acc[vi] = acc[vi].Add(normal)
		}
	}

	for i := range m.Faces {
		for j, vi := range m.Faces[i].V {
			m.Faces[i].Normals[j] = acc[vi].Normalize()
		}
	}
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec4(math3d.Point(m.Vertices[i])).Vec3()
	}
	for i := range m.Faces {
		for j := range 3 {
			// Only correct for rotations and uniform scales
			m.Faces[i].Normals[j] = mat.MulDir(m.Faces[i].Normals[j]).Normalize()
		}
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh. The diffuse map is shared.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]Material, len(m.Materials)),
		Diffuse:   m.Diffuse,
		BaseColor: m.BaseColor,
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Materials, m.Materials)
	return clone
}

// GetFaceMaterial returns the material index for face i.
// Returns -1 if no material assigned.
func (m *Mesh) GetFaceMaterial(i int) int {
	return m.Faces[i].Material
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// GetBounds returns the axis-aligned bounding box.
func (m *Mesh) GetBounds() (lo, hi math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

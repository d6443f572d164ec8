package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/scanline/pkg/math3d"
)

const quadOBJ = `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3 4/4
`

// triangleGLTF holds one red triangle (0,0,0) (1,0,0) (0,1,0) in an
// embedded buffer.
const triangleGLTF = `{
  "asset": {"version": "2.0"},
  "buffers": [{
    "byteLength": 36,
    "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAgD8AAAAA"
  }],
  "bufferViews": [{"buffer": 0, "byteLength": 36}],
  "accessors": [{
    "bufferView": 0,
    "componentType": 5126,
    "count": 3,
    "type": "VEC3",
    "min": [0, 0, 0],
    "max": [1, 1, 0]
  }],
  "materials": [{
    "name": "red",
    "pbrMetallicRoughness": {"baseColorFactor": [1, 0, 0, 1]}
  }],
  "meshes": [{
    "name": "tri",
    "primitives": [{"attributes": {"POSITION": 0}, "material": 0}]
  }]
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	writeFile(t, path, quadOBJ)

	mesh, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "quad.obj", mesh.Name)
	assert.Equal(t, 4, mesh.VertexCount())
	assert.Equal(t, 2, mesh.FaceCount())
	assert.Nil(t, mesh.Diffuse)

	for fi := range mesh.FaceCount() {
		for j := range 3 {
			n := mesh.Normal(fi, j)
			assert.InDelta(t, 1, n.Z, 1e-9, "face %d corner %d normal %v", fi, j, n)
		}
	}

	lo, hi := mesh.GetBounds()
	assert.Equal(t, math3d.V3(0, 0, 0), lo)
	assert.Equal(t, math3d.V3(1, 1, 0), hi)
}

func TestLoadOBJWithDiffuse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	writeFile(t, path, quadOBJ)

	f, err := os.Create(filepath.Join(dir, "quad"+DiffuseSuffix))
	require.NoError(t, err)
	require.NoError(t, tga.Encode(f, quadImage()))
	require.NoError(t, f.Close())

	mesh, err := LoadOBJ(path)
	require.NoError(t, err)
	require.NotNil(t, mesh.Diffuse)
	assert.Equal(t, 2, mesh.Diffuse.Width)

	// Corners sit on UV 0 or 1, so texels land on 0 or 2 which wraps to 0.
	for fi := range mesh.FaceCount() {
		for j := range 3 {
			tc := mesh.TexCoord(fi, j)
			assert.Contains(t, []int{0, 2}, tc.X)
			assert.Contains(t, []int{0, 2}, tc.Y)
		}
	}
	assert.Equal(t, blue, mesh.SampleDiffuse(math3d.V2i(0, 0)))
	assert.Equal(t, red, mesh.SampleDiffuse(math3d.V2i(0, 1)))
}

func TestLoadOBJBadDiffuse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	writeFile(t, path, quadOBJ)
	writeFile(t, filepath.Join(dir, "quad"+DiffuseSuffix), "not a tga")

	_, err := LoadOBJ(path)
	assert.Error(t, err)
}

func TestLoadGLTF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.gltf")
	writeFile(t, path, triangleGLTF)

	mesh, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, mesh.VertexCount())
	require.Equal(t, 1, mesh.FaceCount())
	assert.Equal(t, [3]int{0, 1, 2}, mesh.Face(0))
	assert.Equal(t, 0, mesh.GetFaceMaterial(0))
	require.Equal(t, 1, mesh.MaterialCount())
	assert.Equal(t, "red", mesh.GetMaterial(0).Name)
	assert.Equal(t, red, mesh.BaseColor)
	assert.InDelta(t, 1, mesh.Normal(0, 0).Z, 1e-9)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{"unsupported extension", filepath.Join(dir, "model.stl"), "unsupported format"},
		{"missing obj", filepath.Join(dir, "missing.obj"), "load obj"},
		{"missing glb", filepath.Join(dir, "missing.glb"), "open gltf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadOBJSmoothsMissingNormals(t *testing.T) {
	// Two faces meeting at vertex 1: one facing +Z, one facing +X.
	path := filepath.Join(t.TempDir(), "hinge.obj")
	writeFile(t, path, "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 0 0 1\nf 1 2 3\nf 1 3 4\n")

	mesh, err := LoadOBJ(path)
	require.NoError(t, err)
	require.Equal(t, 2, mesh.FaceCount())

	want := math3d.V3(1, 0, 1).Normalize()
	shared := 0
	for fi := range mesh.FaceCount() {
		for j, vi := range mesh.Face(fi) {
			if mesh.Vertex(vi) != math3d.V3(0, 0, 0) {
				continue
			}
			shared++
			n := mesh.Normal(fi, j)
			assert.InDelta(t, 0, n.Sub(want).Len(), 1e-9, "face %d normal %v", fi, n)
		}
	}
	assert.Equal(t, 2, shared)
}

func TestLoadOBJKeepsNormals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flipped.obj")
	writeFile(t, path, "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 0 0 -1\nf 1/1/1 2/1/1 3/1/1\n")

	mesh, err := LoadOBJ(path)
	require.NoError(t, err)
	require.Equal(t, 1, mesh.FaceCount())
	for j := range 3 {
		assert.Equal(t, math3d.V3(0, 0, -1), mesh.Normal(0, j))
	}
}

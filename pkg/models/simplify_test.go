package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplifyPassThrough(t *testing.T) {
	cube := NewCube(1)
	assert.Same(t, cube, Simplify(cube, 1))
	assert.Same(t, cube, Simplify(cube, 1.5))

	empty := NewMesh("empty")
	assert.Same(t, empty, Simplify(empty, 0.5))
}

func TestSimplifyReducesFaces(t *testing.T) {
	src := NewMesh("grid")
	grid := NewCube(1)
	// Eight disjoint cubes along X.
	for i := range 8 {
		c := grid.Clone()
		for j := range c.Vertices {
			c.Vertices[j].X += float64(i)
		}
		base := len(src.Vertices)
		src.Vertices = append(src.Vertices, c.Vertices...)
		for _, f := range c.Faces {
			f.V = [3]int{f.V[0] + base, f.V[1] + base, f.V[2] + base}
			src.Faces = append(src.Faces, f)
		}
	}
	src.CalculateBounds()

	out := Simplify(src, 0.5)
	require.NotSame(t, src, out)
	assert.LessOrEqual(t, out.FaceCount(), src.FaceCount())
	assert.Equal(t, src.BaseColor, out.BaseColor)
	assert.Nil(t, out.Diffuse)

	for i, f := range out.Faces {
		for _, vi := range f.V {
			require.Less(t, vi, out.VertexCount(), "face %d", i)
		}
	}
}

package models

import (
	"github.com/fogleman/simplify"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Simplify returns a decimated copy of m keeping roughly factor of its
// triangles. Factors at or above 1 return m unchanged. Decimation discards
// texture coordinates, so the result is untextured with flat normals.
func Simplify(m *Mesh, factor float64) *Mesh {
	if factor >= 1 || len(m.Faces) == 0 {
		return m
	}

	tris := make([]*simplify.Triangle, 0, len(m.Faces))
	for _, f := range m.Faces {
		tris = append(tris, &simplify.Triangle{
			V1: toSimplifyVector(m.Vertices[f.V[0]]),
			V2: toSimplifyVector(m.Vertices[f.V[1]]),
			V3: toSimplifyVector(m.Vertices[f.V[2]]),
		})
	}

	reduced := simplify.NewMesh(tris).Simplify(factor)

	out := NewMesh(m.Name)
	out.BaseColor = m.BaseColor
	index := make(map[simplify.Vector]int)
	for _, t := range reduced.Triangles {
		var f Face
		f.Material = -1
		for j, v := range [3]simplify.Vector{t.V1, t.V2, t.V3} {
			i, ok := index[v]
			if !ok {
				i = len(out.Vertices)
				index[v] = i
				out.Vertices = append(out.Vertices, math3d.V3(v.X, v.Y, v.Z))
			}
			f.V[j] = i
		}
		out.Faces = append(out.Faces, f)
	}

	out.CalculateNormals()
	out.CalculateBounds()
	return out
}

func toSimplifyVector(v math3d.Vec3) simplify.Vector {
	return simplify.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

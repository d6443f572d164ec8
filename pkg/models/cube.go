package models

import "github.com/taigrr/scanline/pkg/math3d"

// NewCube returns an axis-aligned cube of the given edge length centred on
// the origin: 8 shared vertices and 12 counter-clockwise (seen from outside)
// triangles with outward face normals.
func NewCube(size float64) *Mesh {
	h := size / 2
	m := NewMesh("cube")
	m.Vertices = []math3d.Vec3{
		{X: -h, Y: -h, Z: -h}, // 0: bottom-left-back
		{X: h, Y: -h, Z: -h},  // 1: bottom-right-back
		{X: h, Y: h, Z: -h},   // 2: top-right-back
		{X: -h, Y: h, Z: -h},  // 3: top-left-back
		{X: -h, Y: -h, Z: h},  // 4: bottom-left-front
		{X: h, Y: -h, Z: h},   // 5: bottom-right-front
		{X: h, Y: h, Z: h},    // 6: top-right-front
		{X: -h, Y: h, Z: h},   // 7: top-left-front
	}

	m.addQuad(4, 5, 6, 7, math3d.V3(0, 0, 1))  // front
	m.addQuad(1, 0, 3, 2, math3d.V3(0, 0, -1)) // back
	m.addQuad(5, 1, 2, 6, math3d.V3(1, 0, 0))  // right
	m.addQuad(0, 4, 7, 3, math3d.V3(-1, 0, 0)) // left
	m.addQuad(7, 6, 2, 3, math3d.V3(0, 1, 0))  // top
	m.addQuad(0, 1, 5, 4, math3d.V3(0, -1, 0)) // bottom

	m.CalculateBounds()
	return m
}

// addQuad appends the quad a-b-c-d as triangles (a,b,c) and (a,c,d).
func (m *Mesh) addQuad(a, b, c, d int, n math3d.Vec3) {
	normals := [3]math3d.Vec3{n, n, n}
	m.Faces = append(m.Faces,
		Face{
			V:        [3]int{a, b, c},
			Normals:  normals,
			UVs:      [3]math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
			Material: -1,
		},
		Face{
			V:        [3]int{a, c, d},
			Normals:  normals,
			UVs:      [3]math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
			Material: -1,
		},
	)
}

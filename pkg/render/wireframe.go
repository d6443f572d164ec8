package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// Wireframe draws projected edges straight into a framebuffer, without
// depth testing.
type Wireframe struct {
	transform Transform
	fb        *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(t Transform, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		transform: t,
		fb:        fb,
	}
}

// DrawLine3D draws a line between two model-space points.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	a := w.transform.Project(w.transform.Recenter(p1))
	b := w.transform.Project(w.transform.Recenter(p2))
	w.fb.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), color)
}

// DrawModel outlines every face of model. Shared edges are drawn twice.
func (w *Wireframe) DrawModel(model Model, color Color) {
	for i := range model.FaceCount() {
		face := model.Face(i)
		for j := range 3 {
			w.DrawLine3D(model.Vertex(face[j]), model.Vertex(face[(j+1)%3]), color)
		}
	}
}

// DrawAxes draws the model-space axes at the origin.
func (w *Wireframe) DrawAxes(length float64) {
	origin := math3d.Zero3()
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	w.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	w.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}

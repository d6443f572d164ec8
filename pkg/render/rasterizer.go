package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// DegenerateArea is the smallest |cross.z| (twice the signed pixel-space
// area) for which a triangle is rasterized at all.
const DegenerateArea = 1e-2

// Stats counts what happened to the fragments of a draw.
type Stats struct {
	Faces         int // Triangles submitted
	Fragments     int // Covered pixels inside the clamped box
	DepthRejected int // Fragments that lost the depth test
	Discarded     int // Fragments the shader discarded
	Written       int // Fragments written to the image and depth buffer
}

// Rasterizer turns pixel-space triangles into image writes arbitrated by a
// depth buffer. The depth buffer defines the raster size.
type Rasterizer struct {
	target ImageSink
	depth  *DepthBuffer
	Stats  Stats
}

// NewRasterizer creates a rasterizer writing into target.
func NewRasterizer(target ImageSink, depth *DepthBuffer) *Rasterizer {
	return &Rasterizer{target: target, depth: depth}
}

// Width returns the raster width.
func (r *Rasterizer) Width() int {
	return r.depth.Width
}

// Height returns the raster height.
func (r *Rasterizer) Height() int {
	return r.depth.Height
}

// Depth returns the depth buffer.
func (r *Rasterizer) Depth() *DepthBuffer {
	return r.depth
}

// ResetStats zeroes the counters (call once per frame).
func (r *Rasterizer) ResetStats() {
	r.Stats = Stats{}
}

// Triangle rasterizes one pixel-space triangle. Every pixel of the bounding
// box, clamped to the raster, is tested at its center. Inside pixels whose
// interpolated depth passes the depth test are shaded; a non-discarded
// fragment updates both the image and the depth buffer.
func (r *Rasterizer) Triangle(pts [3]math3d.Vec3, vary *Varyings, shader Shader) {
	r.Stats.Faces++

	// Find bounding box
	minX := int(math.Max(0, min3(pts[0].X, pts[1].X, pts[2].X)))
	minY := int(math.Max(0, min3(pts[0].Y, pts[1].Y, pts[2].Y)))
	maxX := int(math.Min(float64(r.Width()-1), max3(pts[0].X, pts[1].X, pts[2].X)))
	maxY := int(math.Min(float64(r.Height()-1), max3(pts[0].Y, pts[1].Y, pts[2].Y)))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			bc := barycentric(pts, math3d.V2(float64(x)+0.5, float64(y)+0.5))
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}
			r.Stats.Fragments++

			z := pts[0].Z*bc.X + pts[1].Z*bc.Y + pts[2].Z*bc.Z
			if !r.depth.Test(x, y, z) {
				r.Stats.DepthRejected++
				continue
			}

			c, discard := shader.Fragment(vary, bc)
			if discard {
				r.Stats.Discarded++
				continue
			}
			r.depth.Set(x, y, z)
			r.target.Set(x, y, c)
			r.Stats.Written++
		}
	}
}

// barycentric returns the weights of p against the triangle's x,y. A
// triangle with near-zero area yields (-1, 1, 1), which no pixel accepts.
func barycentric(pts [3]math3d.Vec3, p math3d.Vec2) math3d.Vec3 {
	u := math3d.V3(pts[2].X-pts[0].X, pts[1].X-pts[0].X, pts[0].X-p.X).
		Cross(math3d.V3(pts[2].Y-pts[0].Y, pts[1].Y-pts[0].Y, pts[0].Y-p.Y))
	if math.Abs(u.Z) < DegenerateArea {
		return math3d.V3(-1, 1, 1)
	}
	return math3d.V3(1-(u.X+u.Y)/u.Z, u.Y/u.Z, u.X/u.Z)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

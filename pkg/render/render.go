// Package render implements the CPU triangle pipeline: camera matrices, the
// two-stage shader contract, a barycentric rasterizer with a depth buffer,
// and the driver that feeds mesh faces through them.
package render

import (
	"image/color"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorRed   = color.RGBA{255, 0, 0, 255}
	ColorGreen = color.RGBA{0, 255, 0, 255}
	ColorBlue  = color.RGBA{0, 0, 255, 255}
	ColorGray  = color.RGBA{128, 128, 128, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// MultiplyColor multiplies a color by a scalar (for lighting).
// Channels saturate at 255; alpha is kept.
func MultiplyColor(c Color, intensity float64) Color {
	scale := func(v uint8) uint8 {
		return uint8(max(0, min(255, float64(v)*intensity)))
	}
	return Color{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// Model is the mesh provider the vertex and fragment stages read from.
// It is declared here so render does not import models.
type Model interface {
	VertexCount() int
	FaceCount() int
	Vertex(i int) math3d.Vec3
	Face(i int) [3]int
	Normal(face, nth int) math3d.Vec3
	TexCoord(face, nth int) math3d.Vec2i
	SampleDiffuse(texel math3d.Vec2i) Color
}

// ImageSink receives the finished framebuffer.
type ImageSink interface {
	Set(x, y int, c Color)
	FlipVertically()
	WriteFile(path string) error
}

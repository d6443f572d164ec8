package render

import "math"

// DepthFunc decides whether a fragment's depth beats the stored value.
type DepthFunc int

const (
	// DepthGreater keeps fragments strictly greater than the stored depth.
	DepthGreater DepthFunc = iota
	// DepthLess keeps fragments strictly less than the stored depth.
	DepthLess
)

// Passes reports whether depth z wins against the stored value.
func (f DepthFunc) Passes(z, stored float64) bool {
	if f == DepthLess {
		return z < stored
	}
	return z > stored
}

// ClearValue is the value every test passes against.
func (f DepthFunc) ClearValue() float64 {
	if f == DepthLess {
		return math.Inf(1)
	}
	return math.Inf(-1)
}

// String implements fmt.Stringer.
func (f DepthFunc) String() string {
	if f == DepthLess {
		return "less"
	}
	return "greater"
}

// DepthBuffer holds one depth value per pixel, row-major.
type DepthBuffer struct {
	Width  int
	Height int
	Values []float64
	Func   DepthFunc
}

// NewDepthBuffer creates a cleared depth buffer.
func NewDepthBuffer(width, height int, fn DepthFunc) *DepthBuffer {
	d := &DepthBuffer{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
		Func:   fn,
	}
	d.Clear()
	return d
}

// Clear resets every entry to the depth function's clear value.
func (d *DepthBuffer) Clear() {
	// Use copy-doubling for faster clearing
	n := len(d.Values)
	if n == 0 {
		return
	}
	d.Values[0] = d.Func.ClearValue()
	for i := 1; i < n; i *= 2 {
		copy(d.Values[i:], d.Values[:i])
	}
}

// index returns the slice index of (x, y) and whether it is in range.
func (d *DepthBuffer) index(x, y int) (int, bool) {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return 0, false
	}
	return y*d.Width + x, true
}

// At returns the depth at (x, y), or the clear value when out of range.
func (d *DepthBuffer) At(x, y int) float64 {
	i, ok := d.index(x, y)
	if !ok {
		return d.Func.ClearValue()
	}
	return d.Values[i]
}

// Test reports whether z would be kept at (x, y). Out-of-range pixels
// never pass.
func (d *DepthBuffer) Test(x, y int, z float64) bool {
	i, ok := d.index(x, y)
	return ok && d.Func.Passes(z, d.Values[i])
}

// Set stores z at (x, y). Out-of-range writes are dropped.
func (d *DepthBuffer) Set(x, y int, z float64) {
	if i, ok := d.index(x, y); ok {
		d.Values[i] = z
	}
}

// Visualize maps depth to grayscale: clamp(z/depthRange, -1, 1) is remapped
// from [-1, 1] to [0, 255]. Infinite entries saturate at either end.
func (d *DepthBuffer) Visualize(depthRange float64) *Framebuffer {
	fb := NewFramebuffer(d.Width, d.Height)
	for y := range d.Height {
		for x := range d.Width {
			zn := max(-1, min(1, d.Values[y*d.Width+x]/depthRange))
			v := uint8((zn*0.5 + 0.5) * 255)
			fb.SetPixel(x, y, RGB(v, v, v))
		}
	}
	return fb
}

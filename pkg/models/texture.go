package models

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/taigrr/scanline/pkg/math3d"
)

// WrapMode determines how texture coordinates outside the image are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
)

// Texture holds a 2D image for texture mapping.
// Pixels are stored top row first, as decoded.
type Texture struct {
	Width  int
	Height int
	Pixels []color.RGBA // Row-major pixel data
	Wrap   WrapMode
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
		Wrap:   WrapRepeat,
	}
}

// LoadTexture loads a texture from an image file. The decoder is chosen by
// extension: .tga, .png, .jpg/.jpeg, .bmp, .tif/.tiff.
func LoadTexture(path string) (*Texture, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if _, err := decoderFor(format); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, err := decodeImage(f, format)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", filepath.Base(path), err)
	}

	return TextureFromImage(img), nil
}

type decodeFunc func(r io.Reader) (image.Image, error)

// decoderFor maps a file extension (without the dot) or a MIME type to its
// decoder. image.Decode is avoided: the tga package registers an empty magic
// string that claims every input.
func decoderFor(format string) (decodeFunc, error) {
	switch strings.ToLower(format) {
	case "tga", "image/x-tga", "image/tga":
		return tga.Decode, nil
	case "png", "image/png":
		return png.Decode, nil
	case "jpg", "jpeg", "image/jpeg":
		return jpeg.Decode, nil
	case "bmp", "image/bmp":
		return bmp.Decode, nil
	case "tif", "tiff", "image/tiff":
		return tiff.Decode, nil
	default:
		return nil, fmt.Errorf("unsupported texture format: %q", format)
	}
}

func decodeImage(r io.Reader, format string) (image.Image, error) {
	dec, err := decoderFor(format)
	if err != nil {
		return nil, err
	}
	return dec(r)
}

// sniffFormat guesses the format of encoded image data from its magic
// bytes. TGA has no magic number and is the fallback.
func sniffFormat(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff}):
		return "jpeg"
	case bytes.HasPrefix(data, []byte("BM")):
		return "bmp"
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return "tiff"
	default:
		return "tga"
	}
}

// TextureFromImage creates a texture from an image.Image.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	tex := NewTexture(width, height)

	for y := range height {
		for x := range width {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			r, g, b, a := c.RGBA()
			// RGBA returns 16-bit values, scale to 8-bit
			tex.SetPixel(x, y, color.RGBA{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
				A: uint8(a >> 8),
			})
		}
	}

	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 color.RGBA) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.SetPixel(x, y, c1)
			} else {
				tex.SetPixel(x, y, c2)
			}
		}
	}
	return tex
}

// SetPixel sets a pixel in the texture.
func (t *Texture) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// GetPixel returns the pixel at (x, y) with bounds checking.
func (t *Texture) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return color.RGBA{}
	}
	return t.Pixels[y*t.Width+x]
}

// Texel returns the pixel at an integer texel coordinate whose origin is the
// bottom-left corner, applying the wrap mode.
func (t *Texture) Texel(p math3d.Vec2i) color.RGBA {
	if t.Width == 0 || t.Height == 0 {
		return color.RGBA{}
	}
	x := t.wrapPixelCoord(p.X, t.Width)
	y := t.wrapPixelCoord(p.Y, t.Height)
	return t.GetPixel(x, t.Height-1-y)
}

// Sample samples the texture at UV coordinates (0-1 range, V=0 at bottom)
// with nearest-neighbour filtering.
func (t *Texture) Sample(u, v float64) color.RGBA {
	return t.Texel(math3d.V2i(
		int(math.Floor(u*float64(t.Width))),
		int(math.Floor(v*float64(t.Height))),
	))
}

// wrapPixelCoord wraps a pixel coordinate.
func (t *Texture) wrapPixelCoord(x, size int) int {
	switch t.Wrap {
	case WrapRepeat:
		x = x % size
		if x < 0 {
			x += size
		}
	case WrapClamp:
		if x < 0 {
			x = 0
		} else if x >= size {
			x = size - 1
		}
	}
	return x
}

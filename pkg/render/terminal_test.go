package render

import (
	"image/color"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramebufferDraw(t *testing.T) {
	fb := NewFramebuffer(2, 4)
	fb.SetPixel(0, 0, ColorRed)
	fb.SetPixel(0, 1, ColorBlue)
	fb.SetPixel(1, 2, ColorGreen)

	scr := uv.NewScreenBuffer(8, 8)
	fb.Draw(scr, uv.Rect(1, 1, 6, 6))

	tests := []struct {
		name   string
		x, y   int
		fg, bg color.Color
	}{
		{"top-left cell", 1, 1, ColorRed, ColorBlue},
		{"bottom-right cell", 2, 2, ColorGreen, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := scr.CellAt(tt.x, tt.y)
			require.NotNil(t, cell)
			assert.Equal(t, "▀", cell.Content)
			assert.Equal(t, tt.fg, cell.Style.Fg)
			assert.Equal(t, tt.bg, cell.Style.Bg)
		})
	}

	// Cells outside the framebuffer are untouched.
	for _, p := range [][2]int{{0, 0}, {3, 1}, {1, 3}} {
		cell := scr.CellAt(p[0], p[1])
		require.NotNil(t, cell)
		assert.NotEqual(t, "▀", cell.Content, "cell %v", p)
	}
}

func TestRGBAToColor(t *testing.T) {
	assert.Nil(t, rgbaToColor(color.RGBA{}))
	assert.Equal(t, color.Color(ColorRed), rgbaToColor(ColorRed))
}

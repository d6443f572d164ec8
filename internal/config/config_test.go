package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, Rect{X: 100, Y: 100, W: 600, H: 600}, c.ViewportRect())
	assert.Equal(t, 1.0, c.AspectRatio())
	assert.Equal(t, "output.tga", c.Output.Color)
	assert.Equal(t, "zbuffer.tga", c.Output.Depth)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	doc := `
width: 400
camera:
  position: [0, 0, 3]
shading: gouraud
viewport: {x: 0, y: 0, w: 400, h: 800}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 400, c.Width)
	assert.Equal(t, 800, c.Height, "unset fields keep their defaults")
	assert.Equal(t, Vec{0, 0, 3}, c.Camera.Position)
	assert.Equal(t, Vec{0, 1, 0}, c.Camera.Up)
	assert.Equal(t, "gouraud", c.Shading)
	assert.Equal(t, Rect{W: 400, H: 800}, c.ViewportRect())
	assert.Equal(t, 0.5, c.AspectRatio())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	want := Default()
	want.Camera.Projection = "frustum"
	want.DepthTest = "less"
	want.Background = [3]uint8{30, 30, 40}

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero depth", func(c *Config) { c.Depth = 0 }},
		{"empty viewport", func(c *Config) { c.Viewport = &Rect{W: 0, H: 10} }},
		{"fov too wide", func(c *Config) { c.Camera.FOV = 180 }},
		{"unknown projection", func(c *Config) { c.Camera.Projection = "ortho" }},
		{"frustum near zero", func(c *Config) { c.Camera.Projection = "frustum"; c.Camera.Near = 0 }},
		{"unknown shading", func(c *Config) { c.Shading = "toon" }},
		{"unknown depth test", func(c *Config) { c.DepthTest = "equal" }},
		{"simplify zero", func(c *Config) { c.Simplify = 0 }},
		{"zero preview fps", func(c *Config) { c.Preview.FPS = 0 }},
		{"no color output", func(c *Config) { c.Output.Color = "" }},
		{"no depth output", func(c *Config) { c.Output.Depth = "" }},
		{"eye on target", func(c *Config) { c.Camera.Position = c.Camera.Target }},
		{"up parallel", func(c *Config) { c.Camera.Up = Vec{2, 1, 4} }},
		{"zero up", func(c *Config) { c.Camera.Up = Vec{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

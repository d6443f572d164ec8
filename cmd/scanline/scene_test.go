package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// smallConfig returns the default scene on a 200x200 canvas writing into dir.
func smallConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.Width, cfg.Height = 200, 200
	cfg.Output.Color = filepath.Join(dir, "output.png")
	cfg.Output.Depth = filepath.Join(dir, "zbuffer.png")
	return cfg
}

func newTestScene(t *testing.T, cfg *config.Config) *Scene {
	t.Helper()
	mesh, err := loadModel("", cfg)
	require.NoError(t, err)
	return NewScene(cfg, mesh, zerolog.Nop())
}

func TestRenderToFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := smallConfig(dir)

	stats, err := newTestScene(t, cfg).RenderToFiles()
	require.NoError(t, err)

	assert.Equal(t, 12, stats.Faces)
	assert.Greater(t, stats.Written, 0)
	assert.FileExists(t, cfg.Output.Color)
	assert.FileExists(t, cfg.Output.Depth)
}

func TestRenderToFilesSkipsDepth(t *testing.T) {
	dir := t.TempDir()
	cfg := smallConfig(dir)
	cfg.Output.WriteDepth = false

	_, err := newTestScene(t, cfg).RenderToFiles()
	require.NoError(t, err)

	assert.FileExists(t, cfg.Output.Color)
	_, err = os.Stat(cfg.Output.Depth)
	assert.True(t, os.IsNotExist(err), "depth image should not be written")
}

func TestRenderVariants(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
		depth  render.DepthFunc
	}{
		{"phong", func(*config.Config) {}, render.DepthGreater},
		{"gouraud", func(c *config.Config) { c.Shading = "gouraud" }, render.DepthGreater},
		{"frustum", func(c *config.Config) { c.Camera.Projection = "frustum" }, render.DepthLess},
		{"forced less", func(c *config.Config) {
			c.Camera.Projection = "frustum"
			c.DepthTest = "less"
		}, render.DepthLess},
		{"normalized", func(c *config.Config) { c.Normalize = true }, render.DepthGreater},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig(t.TempDir())
			tt.modify(cfg)
			scene := newTestScene(t, cfg)

			assert.Equal(t, tt.depth, scene.depthFunc())

			p, fb, stats := scene.Render(cfg.Width, cfg.Height, cfg.ViewportRect())
			assert.Greater(t, stats.Written, 0)
			assert.Equal(t, tt.depth, p.Raster.Depth().Func)

			// The cube always covers the projected origin at the canvas centre.
			assert.NotEqual(t, render.ColorBlack, fb.GetPixel(100, 100))
		})
	}
}

func TestRenderWireframe(t *testing.T) {
	cfg := smallConfig(t.TempDir())
	cfg.Wireframe = true

	_, fb, _ := newTestScene(t, cfg).Render(cfg.Width, cfg.Height, cfg.ViewportRect())

	green := 0
	for _, c := range fb.Pixels {
		if c == render.ColorGreen {
			green++
		}
	}
	assert.Greater(t, green, 0, "wireframe edges should be drawn")
}

func TestLoadModel(t *testing.T) {
	cfg := config.Default()

	mesh, err := loadModel("", cfg)
	require.NoError(t, err)
	assert.Equal(t, 12, mesh.FaceCount())

	cfg.Simplify = 0.5
	mesh, err = loadModel("", cfg)
	require.NoError(t, err)
	assert.LessOrEqual(t, mesh.FaceCount(), 12)

	_, err = loadModel(filepath.Join(t.TempDir(), "missing.obj"), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load model")
}

func TestPreviewFrame(t *testing.T) {
	cfg := smallConfig(t.TempDir())
	fb := previewFrame(newTestScene(t, cfg), 40, 20)

	assert.Equal(t, 40, fb.Width)
	assert.Equal(t, 40, fb.Height)
	assert.NotEqual(t, render.ColorBlack, fb.GetPixel(20, 20))
}

func TestNewSceneCamera(t *testing.T) {
	cfg := smallConfig(t.TempDir())
	cfg.Width = 400
	cfg.Camera.Position = config.Vec{0, 3, 4}
	cfg.Camera.Target = config.Vec{0, 1, 0}
	cfg.Camera.Up = config.Vec{0, 0, -1}
	cfg.Camera.FOV = 60

	cam := newTestScene(t, cfg).Camera

	assert.Equal(t, math3d.V3(0, 3, 4), cam.Position)
	assert.Equal(t, math3d.V3(0, 1, 0), cam.Target)
	assert.Equal(t, math3d.V3(0, 0, -1), cam.Up)
	assert.Equal(t, 60.0, cam.FOV)
	assert.Equal(t, 2.0, cam.Aspect)
	assert.Equal(t, render.ProjectionSimple, cam.Projection)
}

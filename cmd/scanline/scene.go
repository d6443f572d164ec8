package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// Scene is a loaded model plus everything needed to draw it.
type Scene struct {
	Config *config.Config
	Model  *models.Mesh
	Camera *render.Camera
	Log    zerolog.Logger
}

// loadModel loads path, or the built-in unit cube when path is empty, and
// applies decimation.
func loadModel(path string, cfg *config.Config) (*models.Mesh, error) {
	var (
		mesh *models.Mesh
		err  error
	)
	if path == "" {
		mesh = models.NewCube(1)
	} else if mesh, err = models.Load(path); err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	if cfg.Simplify < 1 {
		mesh = models.Simplify(mesh, cfg.Simplify)
	}
	return mesh, nil
}

// NewScene builds the camera described by cfg.
func NewScene(cfg *config.Config, mesh *models.Mesh, log zerolog.Logger) *Scene {
	cam := render.DefaultCamera()
	cam.SetPosition(cfg.Camera.Position.Vec3())
	cam.SetTarget(cfg.Camera.Target.Vec3())
	cam.SetUp(cfg.Camera.Up.Vec3())
	cam.SetPerspective(cfg.Camera.FOV, cfg.AspectRatio(), cfg.Camera.Near, cfg.Camera.Far)
	if cfg.Camera.Projection == "frustum" {
		cam.Projection = render.ProjectionFrustum
	}
	return &Scene{Config: cfg, Model: mesh, Camera: cam, Log: log}
}

// depthFunc returns the configured depth test, or the camera's natural one.
func (s *Scene) depthFunc() render.DepthFunc {
	switch s.Config.DepthTest {
	case "greater":
		return render.DepthGreater
	case "less":
		return render.DepthLess
	default:
		return s.Camera.DepthFunc()
	}
}

func (s *Scene) shader(t render.Transform) render.Shader {
	cfg := s.Config.Light
	light := render.Lighting{
		Dir:       cfg.Dir.Vec3(),
		Eye:       s.Camera.Position,
		Ambient:   cfg.Ambient,
		Diffuse:   cfg.Diffuse,
		Specular:  cfg.Specular,
		Shininess: cfg.Shininess,
	}
	if s.Config.Shading == "gouraud" {
		return render.NewGouraudShader(s.Model, t, light)
	}
	return render.NewPhongShader(s.Model, t, light)
}

// Render draws the scene into a width x height canvas through viewport vp.
// The returned pipeline still holds the color and depth targets.
func (s *Scene) Render(width, height int, vp config.Rect) (*render.Pipeline, *render.Framebuffer, render.Stats) {
	fb := render.NewFramebuffer(width, height)
	bg := s.Config.Background
	fb.Clear(render.RGB(bg[0], bg[1], bg[2]))
	depth := render.NewDepthBuffer(width, height, s.depthFunc())

	t := render.NewTransform(s.Camera, math3d.Viewport(vp.X, vp.Y, vp.W, vp.H, s.Config.Depth))
	if s.Config.Normalize {
		t.Normalize = true
		t.Center = s.Model.Center()
		t.Scale = s.Model.NormalizeScale()
	}

	p := render.NewPipeline(s.shader(t), render.NewRasterizer(fb, depth))
	p.Log = s.Log
	stats := p.Draw(s.Model)

	if s.Config.Wireframe {
		w := render.NewWireframe(t, fb)
		w.DrawModel(s.Model, render.ColorGreen)
		w.DrawAxes(1)
	}
	return p, fb, stats
}

// RenderToFiles renders at the configured size and writes the outputs.
func (s *Scene) RenderToFiles() (render.Stats, error) {
	cfg := s.Config
	p, _, stats := s.Render(cfg.Width, cfg.Height, cfg.ViewportRect())

	depthPath := ""
	if cfg.Output.WriteDepth {
		depthPath = cfg.Output.Depth
	}
	if err := p.WriteOutputs(cfg.Output.Color, depthPath, cfg.Depth); err != nil {
		return stats, err
	}
	return stats, nil
}

package render

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Pipeline feeds model faces through a shader and a rasterizer.
// Faces are drawn one after another; a Pipeline is not safe for concurrent
// use because the rasterizer's targets are shared.
type Pipeline struct {
	Shader Shader
	Raster *Rasterizer
	Log    zerolog.Logger
}

// NewPipeline creates a pipeline with logging disabled.
func NewPipeline(shader Shader, raster *Rasterizer) *Pipeline {
	return &Pipeline{
		Shader: shader,
		Raster: raster,
		Log:    zerolog.Nop(),
	}
}

// Draw renders every face of model in enumeration order and returns the
// statistics of this draw.
func (p *Pipeline) Draw(model Model) Stats {
	p.Raster.ResetStats()

	var (
		pts  [3]math3d.Vec3
		vary Varyings
	)
	for i := range model.FaceCount() {
		for j := range 3 {
			pts[j], vary[j] = p.Shader.Vertex(i, j)
		}
		p.Raster.Triangle(pts, &vary, p.Shader)
	}

	s := p.Raster.Stats
	p.Log.Debug().
		Int("faces", s.Faces).
		Int("fragments", s.Fragments).
		Int("written", s.Written).
		Int("discarded", s.Discarded).
		Int("depth_rejected", s.DepthRejected).
		Msg("draw complete")
	return s
}

// WriteImage flips sink to top-down row order and writes it to path.
func WriteImage(sink ImageSink, path string) error {
	sink.FlipVertically()
	if err := sink.WriteFile(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteOutputs writes the rendered image to colorPath and, when depthPath is
// not empty, the depth buffer visualized over depthRange. The color target is
// left flipped.
func (p *Pipeline) WriteOutputs(colorPath, depthPath string, depthRange float64) error {
	if err := WriteImage(p.Raster.target, colorPath); err != nil {
		return err
	}
	p.Log.Debug().Str("path", colorPath).Msg("wrote color image")

	if depthPath == "" {
		return nil
	}
	if err := WriteImage(p.Raster.depth.Visualize(depthRange), depthPath); err != nil {
		return err
	}
	p.Log.Debug().Str("path", depthPath).Msg("wrote depth image")
	return nil
}

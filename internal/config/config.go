// Package config loads the YAML render settings for scanline.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/scanline/pkg/math3d"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Vec is a 3-component vector written as a flow sequence, e.g. [1, 0.5, 2].
type Vec [3]float64

// Vec3 converts v to a math3d vector.
func (v Vec) Vec3() math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

// Rect is a pixel rectangle.
type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type CameraCfg struct {
	Position   Vec     `yaml:"position,flow"`
	Target     Vec     `yaml:"target,flow"`
	Up         Vec     `yaml:"up,flow"`
	FOV        float64 `yaml:"fov"`              // degrees
	Aspect     float64 `yaml:"aspect,omitempty"` // 0 = width/height
	Near       float64 `yaml:"near"`
	Far        float64 `yaml:"far"`
	Projection string  `yaml:"projection"` // "simple" | "frustum"
}

type LightCfg struct {
	Dir       Vec     `yaml:"dir,flow"`
	Ambient   float64 `yaml:"ambient"`
	Diffuse   float64 `yaml:"diffuse"`
	Specular  float64 `yaml:"specular"`
	Shininess float64 `yaml:"shininess"`
}

type OutputCfg struct {
	Color      string `yaml:"color"` // extension picks the encoder
	Depth      string `yaml:"depth"`
	WriteDepth bool   `yaml:"write_depth"`
}

type PreviewCfg struct {
	FPS int `yaml:"fps"`
}

type Config struct {
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	Depth      float64  `yaml:"depth"`
	Viewport   *Rect    `yaml:"viewport,omitempty"` // nil = (w/8, h/8, 3w/4, 3h/4)
	Background [3]uint8 `yaml:"background,flow"`

	Camera    CameraCfg `yaml:"camera"`
	Light     LightCfg  `yaml:"light"`
	Shading   string    `yaml:"shading"`              // "phong" | "gouraud"
	DepthTest string    `yaml:"depth_test,omitempty"` // "greater" | "less"; empty follows projection

	Normalize bool    `yaml:"normalize"`
	Simplify  float64 `yaml:"simplify"` // fraction of faces kept, 1 = off
	Wireframe bool    `yaml:"wireframe"`

	Output  OutputCfg  `yaml:"output"`
	Preview PreviewCfg `yaml:"preview"`
}

// Default returns the stock scene: an 800x800 canvas viewed from (1, 0.5, 2).
func Default() *Config {
	return &Config{
		Width:  800,
		Height: 800,
		Depth:  255,
		Camera: CameraCfg{
			Position:   Vec{1, 0.5, 2},
			Target:     Vec{0, 0, 0},
			Up:         Vec{0, 1, 0},
			FOV:        45,
			Near:       0.1,
			Far:        100,
			Projection: "simple",
		},
		Light: LightCfg{
			Dir:       Vec{1, -1, 1},
			Ambient:   0.5,
			Diffuse:   1.0,
			Specular:  0.6,
			Shininess: 32,
		},
		Shading:  "phong",
		Simplify: 1,
		Output: OutputCfg{
			Color:      "output.tga",
			Depth:      "zbuffer.tga",
			WriteDepth: true,
		},
		Preview: PreviewCfg{FPS: 30},
	}
}

// Load reads path on top of Default and validates the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes c as YAML.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ViewportRect returns the configured viewport or the default inset of one
// eighth on every side.
func (c *Config) ViewportRect() Rect {
	if c.Viewport != nil {
		return *c.Viewport
	}
	return Rect{X: c.Width / 8, Y: c.Height / 8, W: c.Width * 3 / 4, H: c.Height * 3 / 4}
}

// AspectRatio returns Camera.Aspect, or Width/Height when it is unset.
func (c *Config) AspectRatio() float64 {
	if c.Camera.Aspect > 0 {
		return c.Camera.Aspect
	}
	return float64(c.Width) / float64(c.Height)
}

// Validate checks sizes, enum strings and the camera basis.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: canvas %dx%d must be positive", ErrInvalid, c.Width, c.Height)
	}
	if c.Depth <= 0 {
		return fmt.Errorf("%w: depth %v must be positive", ErrInvalid, c.Depth)
	}
	if vp := c.ViewportRect(); vp.W <= 0 || vp.H <= 0 {
		return fmt.Errorf("%w: viewport %dx%d must be positive", ErrInvalid, vp.W, vp.H)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("%w: fov %v must be in (0, 180)", ErrInvalid, c.Camera.FOV)
	}

	switch c.Camera.Projection {
	case "simple", "frustum":
	default:
		return fmt.Errorf("%w: unknown projection %q", ErrInvalid, c.Camera.Projection)
	}
	if c.Camera.Projection == "frustum" && (c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near) {
		return fmt.Errorf("%w: frustum needs 0 < near < far", ErrInvalid)
	}
	switch c.Shading {
	case "phong", "gouraud":
	default:
		return fmt.Errorf("%w: unknown shading %q", ErrInvalid, c.Shading)
	}
	switch c.DepthTest {
	case "", "greater", "less":
	default:
		return fmt.Errorf("%w: unknown depth test %q", ErrInvalid, c.DepthTest)
	}
	if c.Simplify <= 0 || c.Simplify > 1 {
		return fmt.Errorf("%w: simplify %v must be in (0, 1]", ErrInvalid, c.Simplify)
	}
	if c.Preview.FPS <= 0 {
		return fmt.Errorf("%w: preview fps %d must be positive", ErrInvalid, c.Preview.FPS)
	}
	if c.Output.Color == "" {
		return fmt.Errorf("%w: output.color is empty", ErrInvalid)
	}
	if c.Output.WriteDepth && c.Output.Depth == "" {
		return fmt.Errorf("%w: output.depth is empty", ErrInvalid)
	}

	dir := c.Camera.Position.Vec3().Sub(c.Camera.Target.Vec3())
	up := c.Camera.Up.Vec3()
	if dir.Len() < 1e-6 {
		return fmt.Errorf("%w: camera position equals target", ErrInvalid)
	}
	if up.Len() < 1e-6 || up.Normalize().Cross(dir.Normalize()).Len() < 1e-6 {
		return fmt.Errorf("%w: camera up is parallel to the view direction", ErrInvalid)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/nfnt/resize"
	"github.com/rs/zerolog"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/render"
)

const (
	// supersample renders the preview at this multiple of the cell
	// resolution before downscaling.
	supersample = 2

	orbitStep = 0.15
	zoomStep  = 0.25
	minZoom   = 0.5
	maxZoom   = 20
)

// OrbitAxis eases one camera parameter toward its goal with a spring.
type OrbitAxis struct {
	Position float64
	Goal     float64
	velocity float64
	spring   harmonica.Spring
}

// NewOrbitAxis creates an axis resting at start.
func NewOrbitAxis(fps int, start float64) OrbitAxis {
	return OrbitAxis{
		Position: start,
		Goal:     start,
		// Frequency 6.0 = snappy, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Update moves Position one frame toward Goal.
func (a *OrbitAxis) Update() {
	a.Position, a.velocity = a.spring.Update(a.Position, a.velocity, a.Goal)
}

// OrbitState holds the spring-driven camera orbit around the target.
type OrbitState struct {
	Yaw, Pitch, Distance OrbitAxis

	fps  int
	home [3]float64
}

// NewOrbitState starts the orbit at the camera's current placement.
func NewOrbitState(cam *render.Camera, fps int) *OrbitState {
	yaw, pitch := cam.OrbitAngles()
	o := &OrbitState{fps: fps, home: [3]float64{yaw, pitch, cam.Distance()}}
	o.Reset()
	return o
}

// Reset snaps back to the initial placement.
func (o *OrbitState) Reset() {
	o.Yaw = NewOrbitAxis(o.fps, o.home[0])
	o.Pitch = NewOrbitAxis(o.fps, o.home[1])
	o.Distance = NewOrbitAxis(o.fps, o.home[2])
}

// Nudge shifts the goals. Pitch and distance are clamped.
func (o *OrbitState) Nudge(yaw, pitch, zoom float64) {
	const maxPitch = math.Pi/2 - 0.05
	o.Yaw.Goal += yaw
	o.Pitch.Goal = max(-maxPitch, min(maxPitch, o.Pitch.Goal+pitch))
	o.Distance.Goal = max(minZoom, min(maxZoom, o.Distance.Goal+zoom))
}

// Update advances every spring one frame.
func (o *OrbitState) Update() {
	o.Yaw.Update()
	o.Pitch.Update()
	o.Distance.Update()
}

// Apply places cam on the orbit.
func (o *OrbitState) Apply(cam *render.Camera) {
	dir := cam.Position.Sub(cam.Target).Normalize()
	cam.SetPosition(cam.Target.Add(dir.Scale(o.Distance.Position)))
	cam.Orbit(o.Yaw.Position, o.Pitch.Position)
}

// previewFrame renders the scene for a cols x rows cell area. The result is
// in top-down row order, two pixel rows per cell.
func previewFrame(scene *Scene, cols, rows int) *render.Framebuffer {
	w, h := cols*supersample, rows*2*supersample
	side := min(w, h) * 3 / 4
	vp := config.Rect{X: (w - side) / 2, Y: (h - side) / 2, W: side, H: side}

	_, fb, _ := scene.Render(w, h, vp)
	fb.FlipVertically()

	small := resize.Resize(uint(cols), uint(rows*2), fb.ToImage(), resize.Bilinear)
	return render.FramebufferFromImage(small)
}

// runPreview shows the scene in the terminal until the user quits.
func runPreview(ctx context.Context, scene *Scene) error {
	scene.Log = zerolog.Nop()

	fps := scene.Config.Preview.FPS

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	orbit := NewOrbitState(scene.Camera, fps)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-term.Events():
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("q", "escape", "ctrl+c"):
					return nil
				case ev.MatchString("a", "left"):
					orbit.Nudge(-orbitStep, 0, 0)
				case ev.MatchString("d", "right"):
					orbit.Nudge(orbitStep, 0, 0)
				case ev.MatchString("w", "up"):
					orbit.Nudge(0, orbitStep, 0)
				case ev.MatchString("s", "down"):
					orbit.Nudge(0, -orbitStep, 0)
				case ev.MatchString("+", "="):
					orbit.Nudge(0, 0, -zoomStep)
				case ev.MatchString("-", "_"):
					orbit.Nudge(0, 0, zoomStep)
				case ev.MatchString("r"):
					orbit.Reset()
				}
			}

		case <-ticker.C:
			if width <= 0 || height <= 0 {
				continue
			}
			orbit.Update()
			orbit.Apply(scene.Camera)

			previewFrame(scene, width, height).Draw(term, uv.Rect(0, 0, width, height))
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}


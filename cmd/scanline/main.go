// scanline - CPU triangle renderer
// Renders an OBJ or GLB model with Phong shading into output.tga and its
// depth buffer into zbuffer.tga. Without a model it renders a unit cube.
//
// Preview controls (--preview):
//
//	W/S or Up/Down     - Orbit pitch
//	A/D or Left/Right  - Orbit yaw
//	+/-                - Zoom
//	R                  - Reset view
//	Q/Esc              - Quit
package main

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/internal/config"
)

type options struct {
	configPath string
	preview    bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "scanline [model]",
		Short: "Render a triangle mesh on the CPU",
		Long: "scanline rasterizes a .obj, .glb or .gltf model with a look-at camera and\n" +
			"Phong shading, then writes the color image and a depth visualization.\n" +
			"Without a model it renders the built-in unit cube.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			modelPath := ""
			if len(args) == 1 {
				modelPath = args[0]
			}
			return run(cmd.Context(), modelPath, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "YAML render settings")
	cmd.Flags().BoolVarP(&opts.preview, "preview", "p", false, "interactive terminal preview instead of writing files")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "debug logging")
	return cmd
}

func run(ctx context.Context, modelPath string, opts options) error {
	if opts.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}

	mesh, err := loadModel(modelPath, cfg)
	if err != nil {
		return err
	}
	log.Debug().
		Str("model", mesh.Name).
		Int("vertices", mesh.VertexCount()).
		Int("faces", mesh.FaceCount()).
		Msg("model loaded")

	scene := NewScene(cfg, mesh, log.Logger)
	if opts.preview {
		return runPreview(ctx, scene)
	}

	start := time.Now()
	stats, err := scene.RenderToFiles()
	if err != nil {
		return err
	}
	log.Info().
		Str("output", cfg.Output.Color).
		Int("faces", stats.Faces).
		Int("written", stats.Written).
		Dur("elapsed", time.Since(start)).
		Msg("render complete")
	return nil
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}

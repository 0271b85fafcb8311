package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/df07/go-bvh-pathtracer/pkg/logging"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

const (
	flagConfig     = "config"
	flagScene      = "scene"
	flagWidth      = "width"
	flagHeight     = "height"
	flagSamples    = "samples"
	flagDepth      = "depth"
	flagTileSize   = "tile-size"
	flagWorkers    = "workers"
	flagSeed       = "seed"
	flagOutput     = "output"
	flagVerbose    = "verbose"
	flagListScenes = "list-scenes"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	defaults := renderer.DefaultConfig()
	return &cli.App{
		Name:  "bvh-pathtracer",
		Usage: "render a demo scene with a BVH accelerated path tracer",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "YAML render config; flags override its values",
			},
			&cli.StringFlag{
				Name:  flagScene,
				Value: "default",
				Usage: "scene preset to render (see --list-scenes)",
			},
			&cli.IntFlag{Name: flagWidth, Value: defaults.Width, Usage: "image width in pixels"},
			&cli.IntFlag{Name: flagHeight, Value: defaults.Height, Usage: "image height in pixels"},
			&cli.IntFlag{Name: flagSamples, Value: defaults.SamplesPerPixel, Usage: "samples per pixel"},
			&cli.IntFlag{Name: flagDepth, Value: defaults.MaxDepth, Usage: "maximum bounces per path"},
			&cli.IntFlag{Name: flagTileSize, Value: defaults.TileSize, Usage: "tile edge length in pixels"},
			&cli.IntFlag{Name: flagWorkers, Value: defaults.NumWorkers, Usage: "parallel workers (0 = one per CPU)"},
			&cli.Int64Flag{Name: flagSeed, Value: defaults.Seed, Usage: "base random seed"},
			&cli.StringFlag{
				Name:    flagOutput,
				Aliases: []string{"o"},
				Usage:   "output image; format follows the extension (default output/<scene>.png)",
			},
			&cli.BoolFlag{Name: flagVerbose, Aliases: []string{"v"}, Usage: "enable debug logging"},
			&cli.BoolFlag{Name: flagListScenes, Usage: "print the available scene presets and exit"},
		},
		Action: renderAction,
	}
}

func renderAction(c *cli.Context) error {
	if c.Bool(flagListScenes) {
		fmt.Fprintln(c.App.Writer, strings.Join(scene.Presets(), "\n"))
		return nil
	}

	logger, err := logging.NewLogger(c.Bool(flagVerbose))
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	config, err := loadConfig(c)
	if err != nil {
		return err
	}

	sceneName := c.String(flagScene)
	s, err := scene.Build(sceneName, logger)
	if err != nil {
		return err
	}

	r, err := renderer.New(config, logger)
	if err != nil {
		return err
	}
	film, stats, renderErr := r.Render(s)
	if film == nil {
		return renderErr
	}
	if renderErr != nil {
		logger.Warnf("Render completed with errors: %v", renderErr)
	}

	output := c.String(flagOutput)
	if output == "" {
		output = filepath.Join("output", sceneName+".png")
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	if err := imaging.Save(film.Image(), output); err != nil {
		return errors.Wrapf(err, "saving %s", output)
	}

	logger.Infof("Saved %s (%d samples, %.1f spp, %d pixel errors, %v)",
		output, stats.TotalSamples, stats.AverageSamples, stats.PixelErrors, stats.Duration)
	return nil
}

// loadConfig reads the optional config file and applies explicitly set flags
func loadConfig(c *cli.Context) (renderer.Config, error) {
	config := renderer.DefaultConfig()
	if path := c.String(flagConfig); path != "" {
		loaded, err := renderer.LoadConfig(path)
		if err != nil {
			return config, err
		}
		config = loaded
	}

	if c.IsSet(flagWidth) {
		config.Width = c.Int(flagWidth)
	}
	if c.IsSet(flagHeight) {
		config.Height = c.Int(flagHeight)
	}
	if c.IsSet(flagSamples) {
		config.SamplesPerPixel = c.Int(flagSamples)
	}
	if c.IsSet(flagDepth) {
		config.MaxDepth = c.Int(flagDepth)
	}
	if c.IsSet(flagTileSize) {
		config.TileSize = c.Int(flagTileSize)
	}
	if c.IsSet(flagWorkers) {
		config.NumWorkers = c.Int(flagWorkers)
	}
	if c.IsSet(flagSeed) {
		config.Seed = c.Int64(flagSeed)
	}

	return config, errors.Wrap(config.Validate(), "invalid flags")
}

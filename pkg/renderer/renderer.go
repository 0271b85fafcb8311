package renderer

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// ErrIncompleteImage is returned when a render finishes with pixels no tile
// wrote
var ErrIncompleteImage = errors.New("render finished with unwritten pixels")

// Renderer turns a frozen scene into a Film
type Renderer struct {
	config Config
	logger core.Logger
}

// New creates a renderer. A nil logger discards all output.
func New(config Config, logger core.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid render config")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Renderer{config: config, logger: logger}, nil
}

// Config returns the render settings
func (r *Renderer) Config() Config {
	return r.config
}

// Render traces the scene with a path tracing integrator. The scene must
// have had its BVH generated. Recovered pixel failures do not abort the
// render; they are returned combined in the error alongside a complete film.
func (r *Renderer) Render(s *scene.Scene) (*Film, RenderStats, error) {
	if !s.Frozen() {
		return nil, RenderStats{}, errors.Wrap(scene.ErrBVHNotGenerated, "render")
	}

	cfg := r.config
	cameraConfig := s.CameraConfig
	cameraConfig.AspectRatio = float64(cfg.Width) / float64(cfg.Height)
	camera := geometry.NewCamera(cameraConfig)

	tileRenderer := NewTileRenderer(s, camera, integrator.NewPathTracer(cfg.MaxDepth), cfg.Width, cfg.Height, cfg.SamplesPerPixel)
	pool := NewWorkerPool(tileRenderer, cfg.NumWorkers, cfg.Seed)
	tiles := NewTileGrid(cfg.Width, cfg.Height, cfg.TileSize)

	r.logger.Infof("Rendering %dx%d, %d spp, depth %d: %d tiles on %d workers",
		cfg.Width, cfg.Height, cfg.SamplesPerPixel, cfg.MaxDepth, len(tiles), pool.NumWorkers())

	start := time.Now()
	results := make(chan TileResult, len(tiles))
	poolErr := make(chan error, 1)
	go func() {
		poolErr <- pool.Run(tiles, results)
		close(results)
	}()

	film := NewFilm(cfg.Width, cfg.Height)
	stats := RenderStats{
		TotalPixels: cfg.Width * cfg.Height,
		Workers:     pool.NumWorkers(),
	}
	var timings tileTimings
	var renderErr error
	for result := range results {
		if err := film.SetTile(result.Tile.Bounds, result.Pixels); err != nil {
			renderErr = multierr.Append(renderErr, errors.Wrapf(err, "tile %d", result.Tile.ID))
			continue
		}
		stats.Tiles++
		stats.TotalSamples += result.Samples
		stats.PixelErrors += result.PixelErrors
		renderErr = multierr.Append(renderErr, result.Err)
		timings.add(result.Duration)
		r.logger.Debugf("Tile %d done by worker %d in %v", result.Tile.ID, result.WorkerID, result.Duration)
	}
	renderErr = multierr.Append(renderErr, <-poolErr)

	stats.Duration = time.Since(start)
	stats.TileMedian, stats.TileP95 = timings.summarize()
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}

	if missing := film.Missing(); missing > 0 {
		renderErr = multierr.Append(renderErr, errors.Wrapf(ErrIncompleteImage, "%d pixels", missing))
	}
	if stats.PixelErrors > 0 {
		r.logger.Warnf("%d pixels failed to shade and were replaced with the error colour", stats.PixelErrors)
	}
	r.logger.Infof("Render finished in %v (tile median %v, p95 %v)", stats.Duration, stats.TileMedian, stats.TileP95)

	return film, stats, renderErr
}

package renderer

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config contains the render settings. Zero NumWorkers uses one worker per
// schedulable CPU.
type Config struct {
	Width           int   `yaml:"width"`             // Image width in pixels
	Height          int   `yaml:"height"`            // Image height in pixels
	SamplesPerPixel int   `yaml:"samples_per_pixel"` // Camera rays per pixel
	MaxDepth        int   `yaml:"max_depth"`         // Maximum bounces per path
	TileSize        int   `yaml:"tile_size"`         // Edge length of a square tile
	NumWorkers      int   `yaml:"workers"`           // Parallel workers (0 = GOMAXPROCS)
	Seed            int64 `yaml:"seed"`              // Base seed; worker i uses Seed+i
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           480,
		Height:          270,
		SamplesPerPixel: 64,
		MaxDepth:        50,
		TileSize:        16,
		NumWorkers:      0,
		Seed:            1,
	}
}

// Validate reports every invalid field at once
func (c Config) Validate() error {
	var err error
	if c.Width <= 0 || c.Height <= 0 {
		err = multierr.Append(err, errors.Errorf("image size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.SamplesPerPixel <= 0 {
		err = multierr.Append(err, errors.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel))
	}
	if c.MaxDepth < 0 {
		err = multierr.Append(err, errors.Errorf("max depth must not be negative, got %d", c.MaxDepth))
	}
	if c.TileSize <= 0 {
		err = multierr.Append(err, errors.Errorf("tile size must be positive, got %d", c.TileSize))
	}
	if c.NumWorkers < 0 {
		err = multierr.Append(err, errors.Errorf("worker count must not be negative, got %d", c.NumWorkers))
	}
	return err
}

// LoadConfig reads a YAML file over DefaultConfig. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Wrap(err, "reading render config")
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "parsing render config %s", path)
	}
	if err := config.Validate(); err != nil {
		return config, errors.Wrapf(err, "invalid render config %s", path)
	}
	return config, nil
}

package renderer

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
)

// TileResult contains the result from rendering a tile
type TileResult struct {
	Tile        Tile
	WorkerID    int
	Pixels      []core.Vec3   // Row-major within Tile.Bounds
	Samples     int           // Camera rays traced for this tile
	PixelErrors int           // Pixels whose shading panicked
	Err         error         // Recovered pixel failures, combined
	Duration    time.Duration // Wall time spent on the tile
}

// TileRenderer shades the pixels of one tile at a time. It holds no mutable
// state, so a single instance is shared by all workers.
type TileRenderer struct {
	scene      integrator.Scene
	camera     *geometry.Camera
	integrator integrator.Integrator
	width      int
	height     int
	samples    int
}

// NewTileRenderer creates a tile renderer for an image of width x height
// pixels taking samplesPerPixel camera rays per pixel
func NewTileRenderer(scene integrator.Scene, camera *geometry.Camera, integratorInst integrator.Integrator, width, height, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		camera:     camera,
		integrator: integratorInst,
		width:      width,
		height:     height,
		samples:    samplesPerPixel,
	}
}

// RenderTile renders every pixel inside tile.Bounds. A panic while shading a
// pixel is recovered: that pixel becomes core.ErrorColour and the failure is
// recorded in the result, and the remaining pixels are still rendered.
func (tr *TileRenderer) RenderTile(tile Tile, sampler core.Sampler) TileResult {
	start := time.Now()
	bounds := tile.Bounds
	result := TileResult{
		Tile:   tile,
		Pixels: make([]core.Vec3, 0, bounds.Dx()*bounds.Dy()),
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			colour, err := tr.renderPixel(x, y, sampler)
			if err != nil {
				result.PixelErrors++
				result.Err = multierr.Append(result.Err, err)
				colour = core.ErrorColour
			}
			result.Pixels = append(result.Pixels, colour)
			result.Samples += tr.samples
		}
	}

	result.Duration = time.Since(start)
	return result
}

// renderPixel averages samplesPerPixel jittered camera rays through pixel
// (x, y), where y = 0 is the top row of the image
func (tr *TileRenderer) renderPixel(x, y int, sampler core.Sampler) (colour core.Vec3, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = errors.Wrapf(rerr, "pixel (%d, %d)", x, y)
			} else {
				err = errors.Errorf("pixel (%d, %d): %s", x, y, fmt.Sprint(r))
			}
		}
	}()

	var sum core.Vec3
	for s := 0; s < tr.samples; s++ {
		jitter := sampler.Get2D()
		u := (float64(x) + jitter.X) / float64(tr.width)
		v := 1 - (float64(y)+jitter.Y)/float64(tr.height)
		ray := tr.camera.GetRay(u, v, sampler)
		sum = sum.Add(tr.integrator.RayColor(ray, tr.scene, sampler))
	}
	return sum.Multiply(1 / float64(tr.samples)), nil
}

package renderer

import (
	"image"

	"github.com/pkg/errors"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Film accumulates the final radiance of every pixel. It is owned by the
// render coordinator; workers never touch it directly.
type Film struct {
	width, height int
	pixels        []core.Vec3
	written       []bool
}

// NewFilm creates a film with every pixel unwritten
func NewFilm(width, height int) *Film {
	return &Film{
		width:   width,
		height:  height,
		pixels:  make([]core.Vec3, width*height),
		written: make([]bool, width*height),
	}
}

// Bounds returns the pixel rectangle of the film
func (f *Film) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// SetTile copies a rendered tile into the film. Pixels are stored row-major
// within the tile bounds. It fails without writing anything if the tile
// falls outside the film, has the wrong pixel count, or overlaps a pixel
// that was already written.
func (f *Film) SetTile(bounds image.Rectangle, pixels []core.Vec3) error {
	if !bounds.In(f.Bounds()) {
		return errors.Errorf("tile %v outside film %v", bounds, f.Bounds())
	}
	if len(pixels) != bounds.Dx()*bounds.Dy() {
		return errors.Errorf("tile %v has %d pixels, want %d", bounds, len(pixels), bounds.Dx()*bounds.Dy())
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if f.written[y*f.width+x] {
				return errors.Errorf("pixel (%d, %d) written twice", x, y)
			}
		}
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			f.pixels[y*f.width+x] = pixels[i]
			f.written[y*f.width+x] = true
			i++
		}
	}
	return nil
}

// Pixel returns the radiance stored at (x, y) with y = 0 at the top
func (f *Film) Pixel(x, y int) core.Vec3 {
	return f.pixels[y*f.width+x]
}

// Missing returns the number of pixels no tile has written
func (f *Film) Missing() int {
	missing := 0
	for _, w := range f.written {
		if !w {
			missing++
		}
	}
	return missing
}

// Image converts the film to 8-bit RGBA with gamma 2 encoding
func (f *Film) Image() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			img.SetRGBA(x, y, core.ToRGBA(f.Pixel(x, y)))
		}
	}
	return img
}

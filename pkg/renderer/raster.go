package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Raster is a width x height grid of RGB byte triples, stored row-major with
// the origin at the top-left corner
type Raster struct {
	Width  int
	Height int
	Pix    []uint8 // 3 bytes per pixel
}

// NewRaster creates an all-black raster
func NewRaster(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// At returns the pixel at (x, y)
func (r *Raster) At(x, y int) core.Color {
	i := (y*r.Width + x) * 3
	return core.Color{R: r.Pix[i], G: r.Pix[i+1], B: r.Pix[i+2]}
}

// Set stores the pixel at (x, y)
func (r *Raster) Set(x, y int, c core.Color) {
	i := (y*r.Width + x) * 3
	r.Pix[i], r.Pix[i+1], r.Pix[i+2] = c.R, c.G, c.B
}

// Row returns the bytes of row y. The slice aliases the raster.
func (r *Raster) Row(y int) []uint8 {
	stride := r.Width * 3
	return r.Pix[y*stride : (y+1)*stride]
}

// SetRow stores a full row of pixels
func (r *Raster) SetRow(y int, pixels []core.Color) {
	for x, c := range pixels {
		r.Set(x, y, c)
	}
}

// RowPixels returns a copy of row y as colors
func (r *Raster) RowPixels(y int) []core.Color {
	pixels := make([]core.Color, r.Width)
	for x := range pixels {
		pixels[x] = r.At(x, y)
	}
	return pixels
}

// ToImage converts the raster to an opaque RGBA image
func (r *Raster) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			c := r.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}

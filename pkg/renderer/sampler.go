package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Sampler turns pixel coordinates into averaged colors using an N x N grid
// of sub-pixel samples
type Sampler struct {
	scene         *scene.Scene
	integrator    integrator.Integrator
	width, height int
	aaSamples     int
}

// NewSampler creates a sampler for an image of the given size
func NewSampler(s *scene.Scene, integ integrator.Integrator, width, height, aaSamples int) *Sampler {
	return &Sampler{
		scene:      s,
		integrator: integ,
		width:      width,
		height:     height,
		aaSamples:  aaSamples,
	}
}

// SamplesPerPixel returns the number of primary rays traced per pixel
func (s *Sampler) SamplesPerPixel() int {
	return s.aaSamples * s.aaSamples
}

// RenderPixel traces every sub-sample of pixel (x, y) and returns the
// truncated average of the resulting 8-bit colors. With one sample the ray
// goes through the exact pixel center.
func (s *Sampler) RenderPixel(x, y int) core.Color {
	n := s.aaSamples
	var sum core.Vec3
	for sx := 0; sx < n; sx++ {
		for sy := 0; sy < n; sy++ {
			offsetX := (float64(sx) + 0.5) / float64(n)
			offsetY := (float64(sy) + 0.5) / float64(n)

			u := ((float64(x)+offsetX)/float64(s.width))*2 - 1
			v := 1 - ((float64(y)+offsetY)/float64(s.height))*2

			ray := s.scene.Camera.GetRay(u, v)
			sum = sum.Add(s.integrator.RayColor(ray, s.scene).Vec())
		}
	}
	return core.ColorFromVec(sum.Divide(float64(n * n)))
}

// RenderRow renders row y into the raster
func (s *Sampler) RenderRow(y int, raster *Raster) {
	for x := 0; x < s.width; x++ {
		raster.Set(x, y, s.RenderPixel(x, y))
	}
}

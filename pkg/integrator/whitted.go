package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config controls the recursive trace
type Config struct {
	MaxDepth int // Rays at this depth or deeper return black
}

// DefaultConfig returns the standard recursion limit
func DefaultConfig() Config {
	return Config{MaxDepth: 5}
}

// WhittedIntegrator implements recursive Whitted-style ray tracing: local
// Phong shading with hard shadows, plus mirror reflection and refraction
// blended on top.
type WhittedIntegrator struct {
	config Config
}

// NewWhittedIntegrator creates a new Whitted integrator
func NewWhittedIntegrator(config Config) *WhittedIntegrator {
	return &WhittedIntegrator{config: config}
}

// GetConfig returns the integrator configuration
func (wi *WhittedIntegrator) GetConfig() Config {
	return wi.config
}

// RayColor traces a primary ray
func (wi *WhittedIntegrator) RayColor(ray core.Ray, s *scene.Scene) core.Color {
	return wi.Trace(ray, s, 0)
}

// Trace returns the color seen along ray at the given recursion depth.
// Reflection and refraction are each blended onto the same local color and
// are not normalized against each other.
func (wi *WhittedIntegrator) Trace(ray core.Ray, s *scene.Scene, depth int) core.Color {
	if depth >= wi.config.MaxDepth {
		return core.Black
	}

	isect, ok := s.Intersect(ray)
	if !ok {
		return core.Black
	}

	hitPoint := isect.Hit.Point
	normal := isect.Normal()
	viewDir := ray.Direction.Negate()
	mat := isect.Shape.GetMaterial()

	inShadow := InShadow(s, hitPoint, normal)
	color := PhongShade(hitPoint, normal, viewDir, s.Light, mat, inShadow).Vec()

	if mat.IsReflective() {
		r := mat.Reflectivity
		reflectRay := core.NewRay(hitPoint.Offset(normal, SurfaceBias), Reflect(ray.Direction, normal))
		reflected := wi.Trace(reflectRay, s, depth+1).Vec()
		color = color.Multiply(1 - r).Add(reflected.Multiply(r))
	}

	if mat.IsTransparent() {
		// Entering when the ray opposes the normal; otherwise flip and swap media
		refrNormal := normal
		n1, n2 := 1.0, mat.RefractiveIndex
		if ray.Direction.Dot(normal) > 0 {
			refrNormal = normal.Negate()
			n1, n2 = n2, n1
		}

		if dir, ok := Refract(ray.Direction, refrNormal, n1, n2); ok {
			refractRay := core.NewRay(hitPoint.Offset(refrNormal, -SurfaceBias), dir)
			refracted := wi.Trace(refractRay, s, depth+1).Vec()

			k := mat.Transparency * (1 - FresnelWeight(viewDir, normal))
			color = color.Multiply(1 - k).Add(refracted.Multiply(k))
		}
	}

	return core.ColorFromVec(color)
}

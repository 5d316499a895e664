package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// SurfaceBias offsets secondary ray origins along the normal to avoid
// self-intersection
const SurfaceBias = 1e-3

// PhongShade computes the local Phong color at a hit point. Occluded points
// receive the ambient term only. Each channel is scaled to [0,255], clamped
// and rounded.
func PhongShade(hitPoint core.Point, normal, viewDir core.Vec3, light *lights.PointLight, mat *material.Material, inShadow bool) core.Color {
	ambient := mat.Ambient.MultiplyVec(light.Intensity)
	if inShadow {
		return roundColor(ambient.Multiply(255))
	}

	lightDir := light.DirectionFrom(hitPoint)
	nDotL := normal.Dot(lightDir)
	diffuse := mat.Diffuse.MultiplyVec(light.Intensity).Multiply(math.Max(nDotL, 0))

	reflectDir := normal.Multiply(2 * nDotL).Subtract(lightDir).Normalize()
	spec := math.Pow(math.Max(viewDir.Dot(reflectDir), 0), mat.Shininess)
	specular := mat.Specular.MultiplyVec(light.Intensity).Multiply(spec)

	return roundColor(ambient.Add(diffuse).Add(specular).Multiply(255))
}

// InShadow casts a ray from just above the hit point toward the light and
// reports whether anything blocks it before it reaches the light
func InShadow(s *scene.Scene, hitPoint core.Point, normal core.Vec3) bool {
	origin := hitPoint.Offset(normal, SurfaceBias)
	shadowRay := core.NewRay(origin, s.Light.DirectionFrom(hitPoint))
	return s.Occluded(shadowRay, s.Light.DistanceFrom(hitPoint))
}

// Reflect mirrors direction d about normal n
func Reflect(d, n core.Vec3) core.Vec3 {
	return d.Subtract(n.Multiply(2 * d.Dot(n)))
}

// Refract bends unit direction d through a surface with unit normal n facing
// against d, going from index n1 into index n2. It returns false on total
// internal reflection.
func Refract(d, n core.Vec3, n1, n2 float64) (core.Vec3, bool) {
	eta := n1 / n2
	cosI := -n.Dot(d)
	sin2T := eta * eta * (1 - cosI*cosI)
	if sin2T > 1 {
		return core.Vec3{}, false
	}
	cosT := math.Sqrt(1 - sin2T)
	return d.Multiply(eta).Add(n.Multiply(eta*cosI - cosT)), true
}

// FresnelWeight approximates the reflected share of light at a dielectric
// boundary: 0.1 head-on rising to 1 at grazing angles
func FresnelWeight(viewDir, normal core.Vec3) float64 {
	return 0.1 + 0.9*math.Pow(1-math.Abs(viewDir.Dot(normal)), 5)
}

func roundColor(v core.Vec3) core.Color {
	v = v.Clamp(0, 255)
	return core.Color{
		R: uint8(math.Round(v.X)),
		G: uint8(math.Round(v.Y)),
		B: uint8(math.Round(v.Z)),
	}
}

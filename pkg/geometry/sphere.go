package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Point
	Radius   float64
	Material *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Point, radius float64, material *material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects with the sphere using the geometric solution
// of |O + tD - C|² = r²
func (s *Sphere) Hit(ray core.Ray) (HitRecord, bool) {
	// Vector from ray origin to sphere center
	l := s.Center.Subtract(ray.Origin)

	// Distance along the ray to the point closest to the center
	tc := l.Dot(ray.Direction)
	if tc < 0 {
		return HitRecord{}, false
	}

	// Squared perpendicular distance from the center to the ray
	d2 := l.Dot(l) - tc*tc
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return HitRecord{}, false
	}

	thc := math.Sqrt(r2 - d2)
	t := tc - thc
	if t <= 0 {
		// Origin is inside the sphere, use the far root
		t = tc + thc
		if t <= 0 {
			return HitRecord{}, false
		}
	}

	return HitRecord{T: t, Point: ray.At(t)}, true
}

// NormalAt returns the outward normal at the hit point
func (s *Sphere) NormalAt(hit HitRecord) core.Vec3 {
	return hit.Point.Subtract(s.Center).Normalize()
}

// GetMaterial returns the sphere's material
func (s *Sphere) GetMaterial() *material.Material {
	return s.Material
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Add(radius.Negate()),
		s.Center.Add(radius),
	)
}

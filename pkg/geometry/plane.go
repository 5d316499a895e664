package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// parallelEpsilon is the |D·N| below which a ray counts as parallel to a plane
const parallelEpsilon = 1e-6

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Point         // A point on the plane
	Normal   core.Vec3          // Unit normal vector
	Material *material.Material // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(point core.Point, normal core.Vec3, material *material.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: material,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray) (HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < parallelEpsilon {
		return HitRecord{}, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < 0 {
		return HitRecord{}, false
	}

	return HitRecord{T: t, Point: ray.At(t)}, true
}

// NormalAt returns the plane normal; it is the same everywhere
func (p *Plane) NormalAt(hit HitRecord) core.Vec3 {
	return p.Normal
}

// GetMaterial returns the plane's material
func (p *Plane) GetMaterial() *material.Material {
	return p.Material
}

package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// HitRecord describes a single ray-shape intersection. It is returned by
// value and carries everything needed to compute the surface normal later,
// so shapes never store per-query state and can be shared between goroutines.
type HitRecord struct {
	T        float64    // Distance along the ray
	Point    core.Point // Point of intersection
	U, V     float64    // Barycentric coordinates for triangle hits
	Triangle *Triangle  // Winning triangle for triangle and mesh hits
}

// Shape is a read-only scene primitive
type Shape interface {
	// Hit returns the nearest forward intersection of the ray with the shape
	Hit(ray core.Ray) (HitRecord, bool)

	// NormalAt returns the unit surface normal for a hit produced by this shape
	NormalAt(hit HitRecord) core.Vec3

	// GetMaterial returns the surface material
	GetMaterial() *material.Material
}

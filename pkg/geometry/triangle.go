package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// triangleEpsilon bounds both the parallel-determinant test and the minimum accepted t
const triangleEpsilon = 1e-8

// Triangle represents a single triangle defined by three vertices, with
// optional per-vertex normals for smooth shading
type Triangle struct {
	V0, V1, V2 core.Point         // The three vertices
	N0, N1, N2 core.Vec3          // Vertex normals; equal to the face normal when flat
	Material   *material.Material // Material of the triangle

	edge1, edge2 core.Vec3 // Cached edge vectors from V0
	normal       core.Vec3 // Cached face normal
	smooth       bool      // All vertex normals were supplied
}

// NewTriangle creates a flat-shaded triangle from three vertices
func NewTriangle(v0, v1, v2 core.Point, material *material.Material) *Triangle {
	t := newTriangle(v0, v1, v2, material)
	t.N0, t.N1, t.N2 = t.normal, t.normal, t.normal
	return t
}

// NewSmoothTriangle creates a triangle that interpolates the given vertex normals
func NewSmoothTriangle(v0, v1, v2 core.Point, n0, n1, n2 core.Vec3, material *material.Material) *Triangle {
	t := newTriangle(v0, v1, v2, material)
	t.N0, t.N1, t.N2 = n0, n1, n2
	t.smooth = true
	return t
}

func newTriangle(v0, v1, v2 core.Point, material *material.Material) *Triangle {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
		edge1:    edge1,
		edge2:    edge2,
		normal:   edge1.Cross(edge2).Normalize(),
	}
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray) (HitRecord, bool) {
	pvec := ray.Direction.Cross(t.edge2)
	det := t.edge1.Dot(pvec)

	// Ray lies in, or is parallel to, the plane of the triangle
	if math.Abs(det) < triangleEpsilon {
		return HitRecord{}, false
	}
	invDet := 1.0 / det

	tvec := ray.Origin.Subtract(t.V0)
	u := tvec.Dot(pvec) * invDet
	if u < 0.0 || u > 1.0 {
		return HitRecord{}, false
	}

	qvec := tvec.Cross(t.edge1)
	v := ray.Direction.Dot(qvec) * invDet
	if v < 0.0 || u+v > 1.0 {
		return HitRecord{}, false
	}

	tParam := t.edge2.Dot(qvec) * invDet
	if tParam <= triangleEpsilon {
		return HitRecord{}, false
	}

	return HitRecord{
		T:        tParam,
		Point:    ray.At(tParam),
		U:        u,
		V:        v,
		Triangle: t,
	}, true
}

// NormalAt returns the face normal, or the barycentric blend of the vertex
// normals when the triangle is smooth shaded
func (t *Triangle) NormalAt(hit HitRecord) core.Vec3 {
	if !t.smooth {
		return t.normal
	}
	w := 1.0 - hit.U - hit.V
	return t.N0.Multiply(w).
		Add(t.N1.Multiply(hit.U)).
		Add(t.N2.Multiply(hit.V)).
		Normalize()
}

// GetMaterial returns the triangle's material
func (t *Triangle) GetMaterial() *material.Material {
	return t.Material
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(t.V0, t.V1, t.V2)
}

// GetNormal returns the triangle's face normal
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}

// IsSmooth reports whether vertex normals are interpolated
func (t *Triangle) IsSmooth() bool {
	return t.smooth
}

// Centroid returns the average of the three vertices
func (t *Triangle) Centroid() core.Point {
	return t.V0.Add(t.edge1.Add(t.edge2).Divide(3))
}

// Area returns the surface area of the triangle
func (t *Triangle) Area() float64 {
	return t.edge1.Cross(t.edge2).Length() * 0.5
}

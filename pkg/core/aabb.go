package core

import "math"

// slabEpsilon stands in for a zero ray-direction component in the slab test
const slabEpsilon = 1e-8

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Point // Minimum corner
	Max Point // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Point) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Point) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, point := range points[1:] {
		box = box.Extend(point)
	}
	return box
}

// Extend returns an AABB grown to contain the given point
func (aabb AABB) Extend(p Point) AABB {
	return AABB{Min: MinPoint(aabb.Min, p), Max: MaxPoint(aabb.Max, p)}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{Min: MinPoint(aabb.Min, other.Min), Max: MaxPoint(aabb.Max, other.Max)}
}

// HitSlab tests the ray against the box with the slab method. Each axis
// contributes an entry/exit interval; a zero direction component is replaced
// by a tiny epsilon so the division stays finite. The test only rejects a ray
// once the accumulated interval is empty, so it never discards a ray that
// reaches something inside the box.
func (aabb AABB) HitSlab(ray Ray) bool {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		direction := ray.Direction.Component(axis)
		if direction == 0 {
			direction = slabEpsilon
		}
		origin := ray.Origin.Component(axis)

		t1 := (aabb.Min.Component(axis) - origin) / direction
		t2 := (aabb.Max.Component(axis) - origin) / direction
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}

	return true
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Point {
	return aabb.Min.Offset(aabb.Size(), 0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Contains reports whether p lies inside or on the boundary of the box
func (aabb AABB) Contains(p Point) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y &&
		p.Z >= aabb.Min.Z && p.Z <= aabb.Max.Z
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

package core

import "math"

// Point is a fixed position in space. Points and directions are kept as
// separate types: a point plus a direction is a point, a point minus a point
// is a direction, and two points cannot be added.
type Point struct {
	X, Y, Z float64
}

// NewPoint creates a new Point
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Add returns the point displaced by a direction
func (p Point) Add(v Vec3) Point {
	return Point{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Offset returns the point displaced by v scaled by s
func (p Point) Offset(v Vec3, s float64) Point {
	return Point{p.X + v.X*s, p.Y + v.Y*s, p.Z + v.Z*s}
}

// Subtract returns the direction from other to p
func (p Point) Subtract(other Point) Vec3 {
	return Vec3{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// DistanceTo returns the Euclidean distance between two points
func (p Point) DistanceTo(other Point) float64 {
	return p.Subtract(other).Length()
}

// Component returns the component along the given axis (0=X, 1=Y, 2=Z)
func (p Point) Component(axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// MinPoint returns the component-wise minimum of two points
func MinPoint(a, b Point) Point {
	return Point{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

// MaxPoint returns the component-wise maximum of two points
func MaxPoint(a, b Point) Point {
	return Point{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

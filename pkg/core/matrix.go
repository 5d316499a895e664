package core

import "math"

// Mat4 is a row-major 4x4 affine transform
type Mat4 [4][4]float64

// Identity returns the identity transform
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns a transform that moves points by v
func Translation(v Vec3) Mat4 {
	m := Identity()
	m[0][3] = v.X
	m[1][3] = v.Y
	m[2][3] = v.Z
	return m
}

// Scaling returns a non-uniform scale transform
func Scaling(s Vec3) Mat4 {
	m := Identity()
	m[0][0] = s.X
	m[1][1] = s.Y
	m[2][2] = s.Z
	return m
}

// RotationX returns a rotation of theta radians around the X axis
func RotationX(theta float64) Mat4 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotationY returns a rotation of theta radians around the Y axis
func RotationY(theta float64) Mat4 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotationZ returns a rotation of theta radians around the Z axis
func RotationZ(theta float64) Mat4 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Multiply returns m * other, so other is applied first
func (m Mat4) Multiply(other Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				out[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return out
}

// Transpose returns the transposed matrix
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// TransformPoint applies the full transform, translation included
func (m Mat4) TransformPoint(p Point) Point {
	return Point{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3],
	}
}

// TransformVector applies the linear part only; directions ignore translation
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

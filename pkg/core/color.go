package core

// Color is an 8-bit RGB pixel
type Color struct {
	R, G, B uint8
}

// Black is the color returned for misses and exhausted recursion
var Black = Color{}

// NewColor creates a new Color
func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Vec returns the color as a float triple in [0,255]
func (c Color) Vec() Vec3 {
	return Vec3{float64(c.R), float64(c.G), float64(c.B)}
}

// ColorFromVec clamps each channel to [0,255] and truncates toward zero
func ColorFromVec(v Vec3) Color {
	v = v.Clamp(0, 255)
	return Color{R: uint8(v.X), G: uint8(v.Y), B: uint8(v.Z)}
}

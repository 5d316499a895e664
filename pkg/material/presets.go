package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// NewMatte creates a plastic-like material with a soft white highlight
func NewMatte(color core.Vec3) *Material {
	return MustNew(color.Multiply(0.1), color, core.NewVec3(0.5, 0.5, 0.5), 32)
}

// NewMirror creates a mostly reflective material tinted by color
func NewMirror(color core.Vec3, reflectivity float64) *Material {
	return MustNew(color.Multiply(0.1), color.Multiply(0.3), core.NewVec3(1, 1, 1), 128,
		WithReflectivity(reflectivity))
}

// NewGlass creates a clear refractive material
func NewGlass(refractiveIndex, transparency float64) *Material {
	return MustNew(
		core.NewVec3(0.02, 0.02, 0.02),
		core.NewVec3(0.1, 0.1, 0.1),
		core.NewVec3(1, 1, 1),
		256,
		WithTransparency(transparency),
		WithRefractiveIndex(refractiveIndex),
	)
}

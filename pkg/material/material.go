package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidMaterial is wrapped by every validation failure from New
var ErrInvalidMaterial = errors.New("invalid material")

// Material holds the Phong coefficients and the optional reflection and
// refraction parameters of a surface. Materials are immutable once built.
type Material struct {
	Ambient   core.Vec3 // ka, RGB in [0,1]
	Diffuse   core.Vec3 // kd, RGB in [0,1]
	Specular  core.Vec3 // ks, RGB in [0,1]
	Shininess float64   // Phong exponent, >= 0

	Reflectivity    float64 // Mirror blend weight in [0,1], default 0
	Transparency    float64 // Refraction blend weight in [0,1], default 0
	RefractiveIndex float64 // Index of refraction, > 0, default 1.0
}

// Option sets an optional material parameter
type Option func(*Material)

// WithReflectivity sets the mirror blend weight
func WithReflectivity(r float64) Option {
	return func(m *Material) { m.Reflectivity = r }
}

// WithTransparency sets the refraction blend weight
func WithTransparency(t float64) Option {
	return func(m *Material) { m.Transparency = t }
}

// WithRefractiveIndex sets the index of refraction
func WithRefractiveIndex(n float64) Option {
	return func(m *Material) { m.RefractiveIndex = n }
}

// New creates and validates a material
func New(ambient, diffuse, specular core.Vec3, shininess float64, opts ...Option) (*Material, error) {
	m := &Material{
		Ambient:         ambient,
		Diffuse:         diffuse,
		Specular:        specular,
		Shininess:       shininess,
		RefractiveIndex: 1.0,
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// MustNew is like New but panics on invalid parameters. It is meant for
// built-in scenes whose parameters are constants.
func MustNew(ambient, diffuse, specular core.Vec3, shininess float64, opts ...Option) *Material {
	m, err := New(ambient, diffuse, specular, shininess, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Validate checks every parameter against its allowed range
func (m *Material) Validate() error {
	for _, c := range []struct {
		name string
		rgb  core.Vec3
	}{
		{"ambient", m.Ambient},
		{"diffuse", m.Diffuse},
		{"specular", m.Specular},
	} {
		if !inUnitRange(c.rgb.X) || !inUnitRange(c.rgb.Y) || !inUnitRange(c.rgb.Z) {
			return fmt.Errorf("%w: %s %v outside [0,1]", ErrInvalidMaterial, c.name, c.rgb)
		}
	}
	if m.Shininess < 0 {
		return fmt.Errorf("%w: shininess %g is negative", ErrInvalidMaterial, m.Shininess)
	}
	if !inUnitRange(m.Reflectivity) {
		return fmt.Errorf("%w: reflectivity %g outside [0,1]", ErrInvalidMaterial, m.Reflectivity)
	}
	if !inUnitRange(m.Transparency) {
		return fmt.Errorf("%w: transparency %g outside [0,1]", ErrInvalidMaterial, m.Transparency)
	}
	if !(m.RefractiveIndex > 0) {
		return fmt.Errorf("%w: refractive index %g must be positive", ErrInvalidMaterial, m.RefractiveIndex)
	}
	return nil
}

// IsReflective reports whether the surface spawns a reflection ray
func (m *Material) IsReflective() bool {
	return m.Reflectivity > 0
}

// IsTransparent reports whether the surface spawns a refraction ray
func (m *Material) IsTransparent() bool {
	return m.Transparency > 0
}

func inUnitRange(v float64) bool {
	return v >= 0 && v <= 1
}

package lights

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidLight is wrapped by light validation failures
var ErrInvalidLight = errors.New("invalid light")

// PointLight is an infinitesimal light source. It casts hard shadows only.
type PointLight struct {
	Position  core.Point
	Intensity core.Vec3 // RGB in [0,1]
}

// NewPointLight creates a point light after validating its intensity
func NewPointLight(position core.Point, intensity core.Vec3) (*PointLight, error) {
	l := &PointLight{Position: position, Intensity: intensity}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate checks the intensity range
func (l *PointLight) Validate() error {
	i := l.Intensity
	if i.X < 0 || i.X > 1 || i.Y < 0 || i.Y > 1 || i.Z < 0 || i.Z > 1 {
		return fmt.Errorf("%w: intensity %v outside [0,1]", ErrInvalidLight, i)
	}
	return nil
}

// DirectionFrom returns the unit direction from p toward the light
func (l *PointLight) DirectionFrom(p core.Point) core.Vec3 {
	return l.Position.Subtract(p).Normalize()
}

// DistanceFrom returns the distance between p and the light
func (l *PointLight) DistanceFrom(p core.Point) float64 {
	return l.Position.DistanceTo(p)
}

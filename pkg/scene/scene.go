package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// ErrInvalidScene is wrapped by scene validation failures
var ErrInvalidScene = errors.New("invalid scene")

// Scene contains everything a render reads: one camera, an ordered list of
// shapes and a single point light. A scene must not be modified while a
// render is using it.
type Scene struct {
	Camera *geometry.Camera
	Shapes []geometry.Shape // Objects in the scene, scanned in order
	Light  *lights.PointLight
}

// Intersection is the nearest hit found by Intersect together with the shape
// that produced it
type Intersection struct {
	Hit   geometry.HitRecord
	Shape geometry.Shape
}

// Normal returns the surface normal at the intersection
func (i Intersection) Normal() core.Vec3 {
	return i.Shape.NormalAt(i.Hit)
}

// New creates a scene from its parts and validates it
func New(camera *geometry.Camera, shapes []geometry.Shape, light *lights.PointLight) (*Scene, error) {
	s := &Scene{Camera: camera, Shapes: shapes, Light: light}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return fmt.Errorf("%w: no camera", ErrInvalidScene)
	}
	if s.Light == nil {
		return fmt.Errorf("%w: no light", ErrInvalidScene)
	}
	if err := s.Light.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	for i, shape := range s.Shapes {
		if shape == nil {
			return fmt.Errorf("%w: shape %d is nil", ErrInvalidScene, i)
		}
		if shape.GetMaterial() == nil {
			return fmt.Errorf("%w: shape %d has no material", ErrInvalidScene, i)
		}
	}
	return nil
}

// Intersect scans every shape and returns the nearest hit
func (s *Scene) Intersect(ray core.Ray) (Intersection, bool) {
	var closest Intersection
	found := false
	for _, shape := range s.Shapes {
		hit, ok := shape.Hit(ray)
		if ok && (!found || hit.T < closest.Hit.T) {
			closest = Intersection{Hit: hit, Shape: shape}
			found = true
		}
	}
	return closest, found
}

// Occluded reports whether any shape is hit strictly closer than maxDistance
func (s *Scene) Occluded(ray core.Ray, maxDistance float64) bool {
	for _, shape := range s.Shapes {
		if hit, ok := shape.Hit(ray); ok && hit.T < maxDistance {
			return true
		}
	}
	return false
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		switch obj := shape.(type) {
		case *geometry.TriangleMesh:
			count += obj.GetTriangleCount()
		default:
			count++
		}
	}
	return count
}

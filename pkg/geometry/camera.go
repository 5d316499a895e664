package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidCamera is wrapped by camera configuration failures
var ErrInvalidCamera = errors.New("invalid camera")

// CameraConfig contains the user-facing camera parameters
type CameraConfig struct {
	Position    core.Point // Eye position
	LookAt      core.Point // Point the camera looks at
	Up          core.Vec3  // Up hint; re-orthogonalized against the view direction
	FOV         float64    // Field of view in degrees
	AspectRatio float64    // Width / height
}

// DefaultCameraConfig returns a camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:    core.NewPoint(0, 0, 0),
		LookAt:      core.NewPoint(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		FOV:         45,
		AspectRatio: 4.0 / 3.0,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Position != (core.Point{}) {
		result.Position = override.Position
	}
	if override.LookAt != (core.Point{}) {
		result.LookAt = override.LookAt
	}
	if !override.Up.IsZero() {
		result.Up = override.Up
	}
	if override.FOV != 0 {
		result.FOV = override.FOV
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	return result
}

// Camera maps normalized device coordinates to primary rays
type Camera struct {
	config CameraConfig

	forward    core.Vec3
	right      core.Vec3
	up         core.Vec3
	halfWidth  float64
	halfHeight float64
}

// NewCamera creates a camera and derives its orthonormal basis
func NewCamera(config CameraConfig) (*Camera, error) {
	c := &Camera{}
	if err := c.SetConfig(config); err != nil {
		return nil, err
	}
	return c, nil
}

// SetConfig replaces the camera parameters and recomputes the basis
func (c *Camera) SetConfig(config CameraConfig) error {
	if !(config.FOV > 0 && config.FOV < 180) {
		return fmt.Errorf("%w: fov %g must be in (0,180) degrees", ErrInvalidCamera, config.FOV)
	}
	if !(config.AspectRatio > 0) {
		return fmt.Errorf("%w: aspect ratio %g must be positive", ErrInvalidCamera, config.AspectRatio)
	}

	forward := config.LookAt.Subtract(config.Position).Normalize()
	if forward.IsZero() {
		return fmt.Errorf("%w: position and look-at coincide", ErrInvalidCamera)
	}
	right := config.Up.Cross(forward).Normalize()
	if right.IsZero() {
		return fmt.Errorf("%w: up hint %v is parallel to the view direction", ErrInvalidCamera, config.Up)
	}

	c.config = config
	c.forward = forward
	c.right = right
	c.up = forward.Cross(right).Normalize()
	c.halfHeight = math.Tan(config.FOV * math.Pi / 180 / 2)
	c.halfWidth = config.AspectRatio * c.halfHeight
	return nil
}

// GetRay returns the primary ray for NDC coordinates u, v in [-1, 1], v up
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.forward.
		Add(c.right.Multiply(2 * c.halfWidth * u)).
		Add(c.up.Multiply(2 * c.halfHeight * v))
	return core.NewRay(c.config.Position, direction)
}

// Config returns the parameters the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Forward returns the unit view direction
func (c *Camera) Forward() core.Vec3 {
	return c.forward
}

// Right returns the unit right axis
func (c *Camera) Right() core.Vec3 {
	return c.right
}

// Up returns the re-orthogonalized unit up axis
func (c *Camera) Up() core.Vec3 {
	return c.up
}

// HalfWidth returns the half extent of the image plane at unit distance
func (c *Camera) HalfWidth() float64 {
	return c.halfWidth
}

// HalfHeight returns the half extent of the image plane at unit distance
func (c *Camera) HalfHeight() float64 {
	return c.halfHeight
}

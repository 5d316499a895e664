package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates spheres resting on a ground plane: a matte red
// sphere, a mirror and a glass sphere in front of them
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Position:    core.NewPoint(0, 1, 3),
		LookAt:      core.NewPoint(0, 0.5, -2),
		Up:          core.NewVec3(0, 1, 0),
		FOV:         50,
		AspectRatio: 4.0 / 3.0,
	}

	camera, err := newCamera(defaultCameraConfig, cameraOverrides...)
	if err != nil {
		return nil, err
	}

	light, err := lights.NewPointLight(core.NewPoint(5, 8, 5), core.NewVec3(1, 1, 1))
	if err != nil {
		return nil, err
	}

	ground := material.MustNew(
		core.NewVec3(0.1, 0.1, 0.1),
		core.NewVec3(0.6, 0.6, 0.6),
		core.NewVec3(0.2, 0.2, 0.2),
		8,
		material.WithReflectivity(0.2),
	)
	red := material.NewMatte(core.NewVec3(0.8, 0.2, 0.2))
	blue := material.NewMatte(core.NewVec3(0.2, 0.3, 0.8))
	mirror := material.NewMirror(core.NewVec3(0.9, 0.9, 0.9), 0.8)
	glass := material.NewGlass(1.5, 0.9)

	shapes := []geometry.Shape{
		geometry.NewPlane(core.NewPoint(0, 0, 0), core.NewVec3(0, 1, 0), ground),
		geometry.NewSphere(core.NewPoint(-1.2, 0.6, -2.5), 0.6, red),
		geometry.NewSphere(core.NewPoint(1.2, 0.6, -2.5), 0.6, mirror),
		geometry.NewSphere(core.NewPoint(0, 0.5, -1), 0.5, glass),
		geometry.NewSphere(core.NewPoint(0, 0.4, -4), 0.4, blue),
	}

	return New(camera, shapes, light)
}

// NewSphereScene creates a single red sphere at (0,0,-5) seen from the
// origin, framed for an 800x600 image
func NewSphereScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Position:    core.NewPoint(0, 0, 0),
		LookAt:      core.NewPoint(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		FOV:         45,
		AspectRatio: 800.0 / 600.0,
	}

	camera, err := newCamera(defaultCameraConfig, cameraOverrides...)
	if err != nil {
		return nil, err
	}

	light, err := lights.NewPointLight(core.NewPoint(5, 5, 0), core.NewVec3(1, 1, 1))
	if err != nil {
		return nil, err
	}

	red := material.MustNew(
		core.NewVec3(0.1, 0, 0),
		core.NewVec3(0.9, 0.1, 0.1),
		core.NewVec3(1, 1, 1),
		50,
	)
	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewPoint(0, 0, -5), 1, red),
	}

	return New(camera, shapes, light)
}

// newCamera applies the first override, if any, to the scene's camera defaults
func newCamera(defaults geometry.CameraConfig, cameraOverrides ...geometry.CameraConfig) (*geometry.Camera, error) {
	cameraConfig := defaults
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaults, cameraOverrides[0])
	}
	return geometry.NewCamera(cameraConfig)
}

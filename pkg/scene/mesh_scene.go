package scene

import (
	"context"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// MeshSceneOptions selects an optional OBJ model for the mesh scene
type MeshSceneOptions struct {
	OBJPath   string                // Model to add; empty for the built-in solids only
	OBJScale  float64               // Uniform model scale, 0 means 1
	OBJOffset core.Vec3             // Model translation applied after scaling
	Camera    geometry.CameraConfig // Camera overrides
}

// NewMeshScene creates a scene showcasing triangle mesh geometry: a rotated
// cube and a tetrahedron on a reflective floor, plus an optional OBJ model
func NewMeshScene(ctx context.Context, opts MeshSceneOptions) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Position:    core.NewPoint(0, 2, 6),
		LookAt:      core.NewPoint(0, 0.5, 0),
		Up:          core.NewVec3(0, 1, 0),
		FOV:         45,
		AspectRatio: 4.0 / 3.0,
	}

	camera, err := newCamera(defaultCameraConfig, opts.Camera)
	if err != nil {
		return nil, err
	}

	light, err := lights.NewPointLight(core.NewPoint(-4, 6, 6), core.NewVec3(1, 1, 1))
	if err != nil {
		return nil, err
	}

	floor := material.MustNew(
		core.NewVec3(0.05, 0.05, 0.05),
		core.NewVec3(0.5, 0.5, 0.5),
		core.NewVec3(0.3, 0.3, 0.3),
		16,
		material.WithReflectivity(0.3),
	)
	cubeMaterial := material.NewMatte(core.NewVec3(0.2, 0.7, 0.3))
	tetraMaterial := material.NewMirror(core.NewVec3(0.9, 0.7, 0.2), 0.5)

	cube := geometry.NewCube(core.NewPoint(0, 0, 0), 1.2, cubeMaterial).
		Transform(core.Translation(core.NewVec3(-1.3, 0.6, 0)).Multiply(core.RotationY(math.Pi / 6)))
	tetra := geometry.NewTetrahedron(core.NewPoint(1.3, 0.6, 0), 0.5, tetraMaterial)

	shapes := []geometry.Shape{
		geometry.NewPlane(core.NewPoint(0, 0, 0), core.NewVec3(0, 1, 0), floor),
		cube,
		tetra,
	}

	if opts.OBJPath != "" {
		data, err := loaders.LoadOBJ(ctx, opts.OBJPath, loaders.OBJOptions{
			Scale:  opts.OBJScale,
			Offset: opts.OBJOffset,
		})
		if err != nil {
			return nil, err
		}
		mesh, err := data.BuildMesh(material.NewMatte(core.NewVec3(0.7, 0.7, 0.75)))
		if err != nil {
			return nil, fmt.Errorf("failed to build mesh from %s: %w", opts.OBJPath, err)
		}
		shapes = append(shapes, mesh)
	}

	return New(camera, shapes, light)
}

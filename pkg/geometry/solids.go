package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCube creates an axis-aligned cube mesh of the given edge length
func NewCube(center core.Point, size float64, material *material.Material) *TriangleMesh {
	h := size / 2.0
	vertices := []core.Point{
		core.NewPoint(center.X-h, center.Y-h, center.Z-h), // 0
		core.NewPoint(center.X+h, center.Y-h, center.Z-h), // 1
		core.NewPoint(center.X+h, center.Y+h, center.Z-h), // 2
		core.NewPoint(center.X-h, center.Y+h, center.Z-h), // 3
		core.NewPoint(center.X-h, center.Y-h, center.Z+h), // 4
		core.NewPoint(center.X+h, center.Y-h, center.Z+h), // 5
		core.NewPoint(center.X+h, center.Y+h, center.Z+h), // 6
		core.NewPoint(center.X-h, center.Y+h, center.Z+h), // 7
	}
	// Counter-clockwise seen from outside so face normals point outward
	faces := []Face{
		tri(0, 2, 1), tri(0, 3, 2), // -z
		tri(5, 7, 4), tri(5, 6, 7), // +z
		tri(3, 6, 2), tri(3, 7, 6), // top
		tri(4, 1, 5), tri(4, 0, 1), // bottom
		tri(1, 6, 5), tri(1, 2, 6), // right
		tri(4, 3, 0), tri(4, 7, 3), // left
	}
	return mustMesh("Cube", vertices, faces, material)
}

// NewTetrahedron creates a regular tetrahedron inscribed in a cube of half-size size
func NewTetrahedron(center core.Point, size float64, material *material.Material) *TriangleMesh {
	vertices := []core.Point{
		core.NewPoint(center.X+size, center.Y+size, center.Z+size),
		core.NewPoint(center.X+size, center.Y-size, center.Z-size),
		core.NewPoint(center.X-size, center.Y+size, center.Z-size),
		core.NewPoint(center.X-size, center.Y-size, center.Z+size),
	}
	faces := []Face{
		tri(0, 1, 2),
		tri(0, 3, 1),
		tri(0, 2, 3),
		tri(1, 3, 2),
	}
	return mustMesh("Tetrahedron", vertices, faces, material)
}

func tri(a, b, c int) Face {
	return Face{Vertices: []int{a, b, c}}
}

// mustMesh builds a mesh from constant index data that is known to be in range
func mustMesh(name string, vertices []core.Point, faces []Face, material *material.Material) *TriangleMesh {
	mesh, err := NewTriangleMeshFromFaces(name, vertices, faces, nil, material)
	if err != nil {
		panic(err)
	}
	return mesh
}

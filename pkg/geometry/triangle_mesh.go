package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Face is a polygon given as indices into a vertex list. Normals, when not
// empty, holds one index into a normal list per vertex. Faces with more than
// three vertices are fan-triangulated from the first vertex.
type Face struct {
	Vertices []int
	Normals  []int
}

// TriangleMesh is an ordered collection of triangles sharing one material.
// Intersection first tests the cached bounding box and then scans every triangle.
type TriangleMesh struct {
	Name      string
	triangles []*Triangle
	material  *material.Material
	bbox      core.AABB
}

// NewTriangleMesh creates an empty mesh
func NewTriangleMesh(name string, material *material.Material) *TriangleMesh {
	return &TriangleMesh{Name: name, material: material}
}

// NewTriangleMeshFromFaces builds a mesh from a vertex list, a face list and an
// optional normal list. Any index outside its list is reported as an error.
func NewTriangleMeshFromFaces(name string, vertices []core.Point, faces []Face, normals []core.Vec3, material *material.Material) (*TriangleMesh, error) {
	mesh := NewTriangleMesh(name, material)
	for i, face := range faces {
		if err := mesh.AddFace(vertices, normals, face); err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
	}
	return mesh, nil
}

// AddTriangle appends a flat-shaded triangle and grows the bounding box
func (tm *TriangleMesh) AddTriangle(v0, v1, v2 core.Point) {
	tm.append(NewTriangle(v0, v1, v2, tm.material))
}

// AddSmoothTriangle appends a triangle with per-vertex normals
func (tm *TriangleMesh) AddSmoothTriangle(v0, v1, v2 core.Point, n0, n1, n2 core.Vec3) {
	tm.append(NewSmoothTriangle(v0, v1, v2, n0, n1, n2, tm.material))
}

func (tm *TriangleMesh) append(t *Triangle) {
	if len(tm.triangles) == 0 {
		tm.bbox = t.BoundingBox()
	} else {
		tm.bbox = tm.bbox.Union(t.BoundingBox())
	}
	tm.triangles = append(tm.triangles, t)
}

// AddFace fan-triangulates a face and appends the resulting triangles. Vertex
// normals are used only when the face names one for every vertex.
func (tm *TriangleMesh) AddFace(vertices []core.Point, normals []core.Vec3, face Face) error {
	if len(face.Vertices) < 3 {
		return fmt.Errorf("face has %d vertices, need at least 3", len(face.Vertices))
	}
	for _, idx := range face.Vertices {
		if idx < 0 || idx >= len(vertices) {
			return fmt.Errorf("vertex index %d out of range [0,%d)", idx, len(vertices))
		}
	}

	smooth := len(face.Normals) == len(face.Vertices) && len(normals) > 0
	if smooth {
		for _, idx := range face.Normals {
			if idx < 0 || idx >= len(normals) {
				return fmt.Errorf("normal index %d out of range [0,%d)", idx, len(normals))
			}
		}
	}

	v0 := vertices[face.Vertices[0]]
	for i := 1; i < len(face.Vertices)-1; i++ {
		v1 := vertices[face.Vertices[i]]
		v2 := vertices[face.Vertices[i+1]]
		if smooth {
			tm.AddSmoothTriangle(v0, v1, v2,
				normals[face.Normals[0]], normals[face.Normals[i]], normals[face.Normals[i+1]])
		} else {
			tm.AddTriangle(v0, v1, v2)
		}
	}
	return nil
}

// Hit returns the nearest triangle hit, or no hit when the bounding box is missed
func (tm *TriangleMesh) Hit(ray core.Ray) (HitRecord, bool) {
	if len(tm.triangles) == 0 || !tm.bbox.HitSlab(ray) {
		return HitRecord{}, false
	}

	var closest HitRecord
	found := false
	for _, triangle := range tm.triangles {
		hit, ok := triangle.Hit(ray)
		if ok && (!found || hit.T < closest.T) {
			closest = hit
			found = true
		}
	}
	return closest, found
}

// NormalAt returns the normal of the triangle recorded in the hit
func (tm *TriangleMesh) NormalAt(hit HitRecord) core.Vec3 {
	if hit.Triangle == nil {
		return core.NewVec3(0, 1, 0)
	}
	return hit.Triangle.NormalAt(hit)
}

// GetMaterial returns the shared mesh material
func (tm *TriangleMesh) GetMaterial() *material.Material {
	return tm.material
}

// BoundingBox returns the union of all vertex bounds
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bbox
}

// Min returns the minimum corner of the bounding box
func (tm *TriangleMesh) Min() core.Point {
	return tm.bbox.Min
}

// Max returns the maximum corner of the bounding box
func (tm *TriangleMesh) Max() core.Point {
	return tm.bbox.Max
}

// GetTriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) GetTriangleCount() int {
	return len(tm.triangles)
}

// GetTriangles returns the individual triangles
func (tm *TriangleMesh) GetTriangles() []*Triangle {
	return tm.triangles
}

// Transform returns a new mesh with every vertex moved by m. Vertex normals go
// through the linear part of m and are renormalized, which is exact for
// rotations, translations and uniform scales.
func (tm *TriangleMesh) Transform(m core.Mat4) *TriangleMesh {
	out := NewTriangleMesh(tm.Name, tm.material)
	for _, t := range tm.triangles {
		v0, v1, v2 := m.TransformPoint(t.V0), m.TransformPoint(t.V1), m.TransformPoint(t.V2)
		if t.smooth {
			out.AddSmoothTriangle(v0, v1, v2,
				m.TransformVector(t.N0).Normalize(),
				m.TransformVector(t.N1).Normalize(),
				m.TransformVector(t.N2).Normalize())
		} else {
			out.AddTriangle(v0, v1, v2)
		}
	}
	return out
}

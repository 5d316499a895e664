package loaders

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// OBJOptions controls how vertex positions are placed in the scene. Each
// position becomes p*Scale + Offset. A zero Scale is treated as 1.
type OBJOptions struct {
	Scale  float64
	Offset core.Vec3
}

// OBJData is the geometry read from a Wavefront OBJ file. Face indices are
// already converted to 0-based positions in Vertices and Normals; they are
// not range checked until the mesh is built.
type OBJData struct {
	Name     string
	Vertices []core.Point
	Normals  []core.Vec3
	Faces    []geometry.Face
}

// LoadOBJ reads an OBJ file from disk
func LoadOBJ(ctx context.Context, path string, opts OBJOptions) (*OBJData, error) {
	tracer := otel.Tracer("go-whitted-raytracer/loaders")
	_, span := tracer.Start(ctx, "LoadOBJ")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	file, err := os.Open(path)
	if err != nil {
		perr := newParseError(path, 0, "opening OBJ file", err)
		span.RecordError(perr)
		span.SetStatus(codes.Error, perr.Error())
		return nil, perr
	}
	defer file.Close()

	data, err := ParseOBJ(file, path, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	data.Name = filepath.Base(path)

	span.SetAttributes(
		attribute.Int64("vertices", int64(len(data.Vertices))),
		attribute.Int64("normals", int64(len(data.Normals))),
		attribute.Int64("faces", int64(len(data.Faces))),
	)
	span.SetStatus(codes.Ok, "")
	return data, nil
}

// ParseOBJ reads v, vn and f statements. Other statements (vt, o, g, s,
// usemtl, mtllib) are ignored. name is used for error messages.
func ParseOBJ(r io.Reader, name string, opts OBJOptions) (*OBJData, error) {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	data := &OBJData{Name: name}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			x, y, z, err := parseTriple(fields)
			if err != nil {
				return nil, newParseError(name, lineNum, "invalid vertex", err)
			}
			p := core.NewPoint(x*scale, y*scale, z*scale).Add(opts.Offset)
			data.Vertices = append(data.Vertices, p)

		case "vn":
			x, y, z, err := parseTriple(fields)
			if err != nil {
				return nil, newParseError(name, lineNum, "invalid normal", err)
			}
			data.Normals = append(data.Normals, core.NewVec3(x, y, z).Normalize())

		case "f":
			face, err := parseFace(fields[1:], len(data.Vertices), len(data.Normals))
			if err != nil {
				return nil, newParseError(name, lineNum, "invalid face", err)
			}
			data.Faces = append(data.Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, newParseError(name, lineNum, "reading OBJ data", err)
	}

	return data, nil
}

// BuildMesh turns the parsed data into a triangle mesh. Out-of-range face
// indices are reported here.
func (d *OBJData) BuildMesh(mat *material.Material) (*geometry.TriangleMesh, error) {
	return geometry.NewTriangleMeshFromFaces(d.Name, d.Vertices, d.Faces, d.Normals, mat)
}

func parseTriple(fields []string) (float64, float64, float64, error) {
	if len(fields) < 4 {
		return 0, 0, 0, xerrors.Errorf("expected 3 components, got %d", len(fields)-1)
	}
	var v [3]float64
	for i := range v {
		f, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return 0, 0, 0, err
		}
		v[i] = f
	}
	return v[0], v[1], v[2], nil
}

// parseFace reads the vertex tokens of an f statement. Each token is v, v/vt,
// v/vt/vn or v//vn. Normals are kept only when every vertex names one.
func parseFace(tokens []string, vertexCount, normalCount int) (geometry.Face, error) {
	if len(tokens) < 3 {
		return geometry.Face{}, xerrors.Errorf("face has %d vertices, need at least 3", len(tokens))
	}

	face := geometry.Face{Vertices: make([]int, 0, len(tokens))}
	normals := make([]int, 0, len(tokens))
	for _, token := range tokens {
		parts := strings.Split(token, "/")

		v, err := resolveIndex(parts[0], vertexCount)
		if err != nil {
			return geometry.Face{}, err
		}
		face.Vertices = append(face.Vertices, v)

		if len(parts) >= 3 && parts[2] != "" {
			n, err := resolveIndex(parts[2], normalCount)
			if err != nil {
				return geometry.Face{}, err
			}
			normals = append(normals, n)
		}
	}

	if len(normals) == len(face.Vertices) {
		face.Normals = normals
	}
	return face, nil
}

// resolveIndex converts a 1-based OBJ index, or a negative index relative to
// the current end of the list, into a 0-based index
func resolveIndex(token string, count int) (int, error) {
	idx, err := strconv.Atoi(token)
	if err != nil {
		return 0, xerrors.Errorf("bad index %q", token)
	}
	switch {
	case idx > 0:
		return idx - 1, nil
	case idx < 0:
		if count+idx < 0 {
			return 0, xerrors.Errorf("index %d reaches before the first of %d entries", idx, count)
		}
		return count + idx, nil
	default:
		return 0, xerrors.Errorf("index 0 is not valid, OBJ indices start at 1")
	}
}

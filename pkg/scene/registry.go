package scene

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// SceneInfo describes a scene that can be built by name
type SceneInfo struct {
	ID          string // Identifier accepted by Build
	DisplayName string
	Description string
	Type        string // "builtin" or "obj"
	FilePath    string // Model path (obj type only)
}

// BuildOptions are passed to Build
type BuildOptions struct {
	Camera    geometry.CameraConfig // Camera overrides applied to the scene defaults
	OBJPath   string                // Model added to the mesh scene
	OBJScale  float64
	OBJOffset core.Vec3
	ModelsDir string // Directory that "obj:<name>" IDs are resolved against
}

// objPrefix marks scene IDs that name a model in BuildOptions.ModelsDir
const objPrefix = "obj:"

var builtinScenes = []SceneInfo{
	{
		ID:          "default",
		DisplayName: "Default Scene",
		Description: "Spheres on a reflective plane with a mirror and a glass sphere",
		Type:        "builtin",
	},
	{
		ID:          "sphere",
		DisplayName: "Single Sphere",
		Description: "One red sphere at (0,0,-5) seen from the origin",
		Type:        "builtin",
	},
	{
		ID:          "mesh",
		DisplayName: "Triangle Meshes",
		Description: "Cube and tetrahedron meshes, plus an optional OBJ model",
		Type:        "builtin",
	},
}

// ListBuiltinScenes returns the scenes that Build knows
func ListBuiltinScenes() []SceneInfo {
	out := make([]SceneInfo, len(builtinScenes))
	copy(out, builtinScenes)
	return out
}

// Build creates the scene with the given ID. Besides the built-in IDs it
// accepts the "obj:<name>" IDs returned by ListOBJModels, which build the mesh
// scene with <name>.obj from opts.ModelsDir.
func Build(ctx context.Context, id string, opts BuildOptions) (*Scene, error) {
	if name, ok := strings.CutPrefix(id, objPrefix); ok {
		if name == "" {
			return nil, fmt.Errorf("scene %q names no model", id)
		}
		if opts.OBJPath != "" {
			return nil, fmt.Errorf("scene %q already names a model, got OBJ path %s as well", id, opts.OBJPath)
		}
		opts.OBJPath = filepath.Join(opts.ModelsDir, name+".obj")
		id = "mesh"
	}

	switch id {
	case "default":
		return NewDefaultScene(opts.Camera)
	case "sphere":
		return NewSphereScene(opts.Camera)
	case "mesh":
		return NewMeshScene(ctx, MeshSceneOptions{
			OBJPath:   opts.OBJPath,
			OBJScale:  opts.OBJScale,
			OBJOffset: opts.OBJOffset,
			Camera:    opts.Camera,
		})
	default:
		return nil, fmt.Errorf("unknown scene %q", id)
	}
}

// ListOBJModels scans dir for .obj files that can be added to the mesh
// scene. A missing directory yields an empty list.
func ListOBJModels(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.obj"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan models directory: %v", err)
	}

	models := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		models = append(models, SceneInfo{
			ID:          objPrefix + name,
			DisplayName: titleCase(name),
			Type:        "obj",
			FilePath:    filePath,
		})
	}

	sort.Slice(models, func(i, j int) bool {
		return models[i].DisplayName < models[j].DisplayName
	})
	return models, nil
}

// titleCase turns "my-model_name" into "My Model Name"
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}

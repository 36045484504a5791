package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-pathtracer/pkg/geometry"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("scene: unknown scene")

// Options are shared by all built-in scene constructors
type Options struct {
	BVH      geometry.BVHOptions
	MeshPath string               // Model file for the mesh scene (.obj, .gltf, .glb)
	Extra    []geometry.Primitive // Additional primitives appended to the scene
}

// DefaultOptions returns options with the default BVH settings
func DefaultOptions() Options {
	return Options{BVH: geometry.DefaultBVHOptions()}
}

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string
	Description string
	build       func(Options) (*Scene, error)
}

// Build constructs the scene
func (info SceneInfo) Build(options Options) (*Scene, error) {
	return info.build(options)
}

var builtins = map[string]SceneInfo{
	"cornell": {
		Name:        "cornell",
		Description: "Cornell box with two blocks and a ceiling area light",
		build:       NewCornellScene,
	},
	"quad-light": {
		Name:        "quad-light",
		Description: "Unit square light above a large diffuse floor",
		build:       NewQuadLightScene,
	},
	"boxes": {
		Name:        "boxes",
		Description: "Grid of rotated boxes under two area lights",
		build:       NewBoxesScene,
	},
	"mesh": {
		Name:        "mesh",
		Description: "Imported triangle mesh (or an octahedron) on a floor under an area light",
		build:       NewMeshScene,
	},
}

// ListScenes returns the built-in scenes sorted by name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, info := range builtins {
		scenes = append(scenes, info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes
}

// Lookup finds a built-in scene by name
func Lookup(name string) (SceneInfo, error) {
	info, ok := builtins[name]
	if !ok {
		return SceneInfo{}, fmt.Errorf("%q: %w", name, ErrUnknownScene)
	}
	return info, nil
}

// Build constructs the named built-in scene
func Build(name string, options Options) (*Scene, error) {
	info, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return info.Build(options)
}

func wrapPart(part string, err error) error {
	return fmt.Errorf("building %s: %w", part, err)
}

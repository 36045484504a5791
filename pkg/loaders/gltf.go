package loaders

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF reads every triangle primitive of every mesh in a .gltf or .glb
// file. Node transforms are not applied.
func LoadGLTF(path string) (*MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	data := &MeshData{}
	for _, m := range doc.Meshes {
		if err := readGLTFMesh(doc, m, data); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	return data, nil
}

func readGLTFMesh(doc *gltf.Document, m *gltf.Mesh, data *MeshData) error {
	for _, prim := range m.Primitives {
		// Skip non-triangle primitives (lines, points, strips)
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		baseVertex := len(data.Vertices)
		for _, p := range positions {
			data.Vertices = append(data.Vertices, core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2])))
		}

		if prim.Indices == nil {
			// Non-indexed: every three vertices form a triangle
			for i := 0; i+2 < len(positions); i += 3 {
				data.Faces = append(data.Faces, baseVertex+i, baseVertex+i+1, baseVertex+i+2)
			}
			continue
		}

		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			data.Faces = append(data.Faces,
				baseVertex+int(indices[i]),
				baseVertex+int(indices[i+1]),
				baseVertex+int(indices[i+2]),
			)
		}
	}
	return nil
}

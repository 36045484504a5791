package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// LoadOBJ reads a Wavefront OBJ file
func LoadOBJ(path string) (*MeshData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	data, err := ReadOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// ReadOBJ parses vertex positions ("v") and faces ("f") from Wavefront OBJ
// text. Polygons are fan-triangulated; normals, texture coordinates, groups
// and materials are ignored.
func ReadOBJ(r io.Reader) (*MeshData, error) {
	data := &MeshData{}
	lineNum := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "v":
			v, err := parseOBJVertex(lineTokens)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			data.Vertices = append(data.Vertices, v)
		case "f":
			if len(lineTokens) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices; got %d", lineNum, len(lineTokens)-1)
			}
			polygon := make([]int, 0, len(lineTokens)-1)
			for _, token := range lineTokens[1:] {
				index, err := parseOBJIndex(token, len(data.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				polygon = append(polygon, index)
			}
			data.Faces = appendFan(data.Faces, polygon)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return data, nil
}

// parseOBJVertex parses "v x y z [w]"
func parseOBJVertex(lineTokens []string) (core.Vec3, error) {
	if len(lineTokens) < 4 {
		return core.Vec3{}, fmt.Errorf("expected 3 vertex coordinates; got %d", len(lineTokens)-1)
	}
	var coords [3]float64
	for i := range coords {
		value, err := strconv.ParseFloat(lineTokens[i+1], 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("could not parse vertex coordinate %q", lineTokens[i+1])
		}
		coords[i] = value
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// parseOBJIndex converts a face token ("i", "i/t", "i//n" or "i/t/n") to a
// zero-based vertex index. Indices start from 1 and may be negative to count
// back from the most recent vertex.
func parseOBJIndex(token string, vertexCount int) (int, error) {
	if slash := strings.IndexByte(token, '/'); slash >= 0 {
		token = token[:slash]
	}
	index, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("could not parse face index %q", token)
	}

	switch {
	case index > 0:
		index--
	case index < 0:
		index += vertexCount
	default:
		return 0, fmt.Errorf("face index 0: %w", geometry.ErrBadFaceIndex)
	}
	if index < 0 || index >= vertexCount {
		return 0, fmt.Errorf("face index %s references undefined vertex: %w", token, geometry.ErrBadFaceIndex)
	}
	return index, nil
}

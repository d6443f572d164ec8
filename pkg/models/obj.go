package models

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/fauxgl"

	"github.com/taigrr/scanline/pkg/math3d"
)

// DiffuseSuffix names the texture looked up next to an OBJ file:
// head.obj -> head_diffuse.tga.
const DiffuseSuffix = "_diffuse.tga"

// LoadOBJ loads a Wavefront OBJ file. Polygons are triangulated, shared
// positions are merged, and a sibling diffuse map is attached when present.
func LoadOBJ(path string) (*Mesh, error) {
	src, err := fauxgl.LoadOBJ(path)
	if err != nil {
		return nil, fmt.Errorf("load obj: %w", err)
	}

	// fauxgl fills missing normals with flat face normals; smooth them
	// instead when the file has no vn records.
	hasNormals, err := objHasNormals(path)
	if err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}
	mesh := meshFromTriangles(filepath.Base(path), src.Triangles)
	if !hasNormals {
		mesh.CalculateSmoothNormals()
	}

	texPath := strings.TrimSuffix(path, filepath.Ext(path)) + DiffuseSuffix
	tex, err := LoadTexture(texPath)
	switch {
	case err == nil:
		mesh.Diffuse = tex
	case errors.Is(err, fs.ErrNotExist):
		// Untextured model
	default:
		return nil, fmt.Errorf("load diffuse map: %w", err)
	}

	return mesh, nil
}

// objHasNormals reports whether the OBJ file declares any vertex normals.
func objHasNormals(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.HasPrefix(strings.TrimSpace(scanner.Text()), "vn ") {
			return true, nil
		}
	}
	return false, scanner.Err()
}

// meshFromTriangles converts unindexed fauxgl triangles into a Mesh.
func meshFromTriangles(name string, tris []*fauxgl.Triangle) *Mesh {
	mesh := NewMesh(name)
	index := make(map[fauxgl.Vector]int, len(tris))

	vertexIndex := func(p fauxgl.Vector) int {
		if i, ok := index[p]; ok {
			return i
		}
		i := len(mesh.Vertices)
		index[p] = i
		mesh.Vertices = append(mesh.Vertices, math3d.V3(p.X, p.Y, p.Z))
		return i
	}

	for _, t := range tris {
		corners := [3]fauxgl.Vertex{t.V1, t.V2, t.V3}
		var f Face
		f.Material = -1
		for j, c := range corners {
			f.V[j] = vertexIndex(c.Position)
			f.Normals[j] = math3d.V3(c.Normal.X, c.Normal.Y, c.Normal.Z)
			f.UVs[j] = math3d.V2(c.Texture.X, c.Texture.Y)
		}
		mesh.Faces = append(mesh.Faces, f)
	}

	mesh.CalculateBounds()
	return mesh
}

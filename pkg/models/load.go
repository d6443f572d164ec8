package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a model file, choosing the loader by extension.
func Load(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		return LoadGLB(path)
	case ".obj":
		return LoadOBJ(path)
	default:
		return nil, fmt.Errorf("unsupported format: %q (use .obj, .glb or .gltf)", ext)
	}
}

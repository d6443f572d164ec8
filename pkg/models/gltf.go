package models

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/scanline/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Options
	CalculateNormals bool
	SmoothNormals    bool
	LoadTextures     bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		SmoothNormals:    true,
		LoadTextures:     true,
	}
}

// LoadGLB loads a binary or JSON GLTF file with the default loader.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))

	for _, mat := range doc.Materials {
		mesh.Materials = append(mesh.Materials, convertMaterial(mat))
	}
	if len(mesh.Materials) > 0 {
		mesh.BaseColor = rgbaFromFactor(mesh.Materials[0].BaseColor)
	}

	// Process all meshes in the document
	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if l.CalculateNormals && !mesh.HasNormals() {
		if l.SmoothNormals {
			mesh.CalculateSmoothNormals()
		} else {
			mesh.CalculateNormals()
		}
	}

	if l.LoadTextures {
		img, err := firstImage(doc, filepath.Dir(path))
		if err != nil {
			return nil, fmt.Errorf("load texture: %w", err)
		}
		if img != nil {
			mesh.Diffuse = TextureFromImage(img)
		}
	}

	mesh.CalculateBounds()

	return mesh, nil
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
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

		var normals [][3]float32
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var uvs [][2]float32
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		material := -1
		if prim.Material != nil {
			material = *prim.Material
		}

		baseVertex := len(mesh.Vertices)
		for _, p := range positions {
			mesh.Vertices = append(mesh.Vertices, math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])))
		}

		for i := 0; i+2 < len(indices); i += 3 {
			f := Face{Material: material}
			for j := range 3 {
				idx := int(indices[i+j])
				if idx >= len(positions) {
					return fmt.Errorf("index %d out of range (%d vertices)", idx, len(positions))
				}
				f.V[j] = baseVertex + idx
				if idx < len(normals) {
					n := normals[idx]
					f.Normals[j] = math3d.V3(float64(n[0]), float64(n[1]), float64(n[2]))
				}
				if idx < len(uvs) {
					// GLTF uses top-left origin (V=0 at top), flip V for bottom-left origin
					f.UVs[j] = math3d.V2(float64(uvs[idx][0]), 1.0-float64(uvs[idx][1]))
				}
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	}

	return nil
}

// convertMaterial copies the metallic-roughness factors of a GLTF material.
func convertMaterial(mat *gltf.Material) Material {
	out := Material{
		Name:      mat.Name,
		BaseColor: [4]float64{1, 1, 1, 1},
		Metallic:  1,
		Roughness: 1,
	}
	if pbr := mat.PBRMetallicRoughness; pbr != nil {
		out.BaseColor = pbr.BaseColorFactorOrDefault()
		out.Metallic = pbr.MetallicFactorOrDefault()
		out.Roughness = pbr.RoughnessFactorOrDefault()
	}
	return out
}

// rgbaFromFactor converts a 0-1 RGBA factor to 8-bit colour.
func rgbaFromFactor(f [4]float64) color.RGBA {
	to8 := func(v float64) uint8 {
		return uint8(max(0, min(1, v))*255 + 0.5)
	}
	return color.RGBA{to8(f[0]), to8(f[1]), to8(f[2]), to8(f[3])}
}

// firstImage decodes the first image of the document: from a buffer view,
// a base64 data URI or a file next to the model. It returns nil without
// error when the document has no images. A buffer view outside its buffer
// is an error.
func firstImage(doc *gltf.Document, dir string) (image.Image, error) {
	for i, img := range doc.Images {
		var data []byte
		switch {
		case img.BufferView != nil:
			b, err := bufferViewData(doc, *img.BufferView)
			if err != nil {
				return nil, fmt.Errorf("image %d: %w", i, err)
			}
			data = b
		case strings.HasPrefix(img.URI, "data:"):
			b, err := decodeDataURI(img.URI)
			if err != nil {
				return nil, fmt.Errorf("image %d: %w", i, err)
			}
			data = b
		case img.URI != "":
			b, err := os.ReadFile(filepath.Join(dir, img.URI))
			if err != nil {
				return nil, err
			}
			data = b
		default:
			continue
		}

		format := img.MimeType
		if format == "" {
			format = sniffFormat(data)
		}
		decoded, err := decodeImage(bytes.NewReader(data), format)
		if err != nil {
			return nil, fmt.Errorf("decode image %d: %w", i, err)
		}
		return decoded, nil
	}
	return nil, nil
}

// bufferViewData returns the bytes of buffer view idx.
func bufferViewData(doc *gltf.Document, idx int) ([]byte, error) {
	if idx < 0 || idx >= len(doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range", idx)
	}
	bv := doc.BufferViews[idx]
	if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range", bv.Buffer)
	}
	buf := doc.Buffers[bv.Buffer].Data
	end := bv.ByteOffset + bv.ByteLength
	if bv.ByteOffset < 0 || end > len(buf) {
		return nil, fmt.Errorf("buffer view %d spans %d..%d of a %d byte buffer", idx, bv.ByteOffset, end, len(buf))
	}
	return buf[bv.ByteOffset:end], nil
}

// decodeDataURI returns the payload of a base64 data URI.
func decodeDataURI(uri string) ([]byte, error) {
	header, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return nil, errors.New("data uri is not base64")
	}
	return base64.StdEncoding.DecodeString(payload)
}

package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/halfblock/pkg/math3d"
)

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Load picks a loader from the file extension.
func Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return LoadGLB(path)
	case ".obj":
		return LoadOBJ(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadOBJ reads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()
	return ParseOBJ(f, filepath.Base(path))
}

// ParseOBJ reads positions, texture coordinates, normals and faces.
// Polygons are fan triangulated and usemtl switches the face material.
// Material libraries are not read, so materials carry only their name.
// Texture V is flipped to the top-left origin used by Texture.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	p := objParser{
		mesh:      NewMesh(name),
		verts:     map[[3]int]int{},
		materials: map[string]int{},
		material:  -1,
	}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, fmt.Errorf("obj line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if !p.mesh.hasNormals() {
		p.mesh.CalculateSmoothNormals()
	}
	p.mesh.CalculateBounds()
	return p.mesh, nil
}

type objParser struct {
	mesh      *Mesh
	positions []math3d.Vec3
	uvs       []math3d.Vec2
	normals   []math3d.Vec3
	verts     map[[3]int]int // (v, vt, vn) to vertex index
	materials map[string]int
	material  int
}

func (p *objParser) parseLine(s string) error {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, math3d.V3(v[0], v[1], v[2]))
	case "vt":
		v, err := parseFloats(fields[1:], 2)
		if err != nil {
			return err
		}
		p.uvs = append(p.uvs, math3d.V2(v[0], 1-v[1]))
	case "vn":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, math3d.V3(v[0], v[1], v[2]))
	case "f":
		return p.face(fields[1:])
	case "usemtl":
		if len(fields) < 2 {
			return errors.New("usemtl without a name")
		}
		p.useMaterial(fields[1])
	}
	return nil
}

func (p *objParser) useMaterial(name string) {
	idx, ok := p.materials[name]
	if !ok {
		idx = len(p.mesh.Materials)
		p.mesh.Materials = append(p.mesh.Materials, Material{
			Name:      name,
			BaseColor: [4]float64{1, 1, 1, 1},
			Roughness: 1,
		})
		p.materials[name] = idx
	}
	p.material = idx
}

func (p *objParser) face(refs []string) error {
	if len(refs) < 3 {
		return fmt.Errorf("face with %d vertices", len(refs))
	}
	idx := make([]int, len(refs))
	for i, ref := range refs {
		v, err := p.vertex(ref)
		if err != nil {
			return err
		}
		idx[i] = v
	}
	for i := 1; i+1 < len(idx); i++ {
		p.mesh.Faces = append(p.mesh.Faces, Face{V: [3]int{idx[0], idx[i], idx[i+1]}, Material: p.material})
	}
	return nil
}

// vertex resolves a v, v/vt, v//vn or v/vt/vn reference, deduplicating
// identical triples.
func (p *objParser) vertex(ref string) (int, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return 0, fmt.Errorf("bad vertex reference %q", ref)
	}

	key := [3]int{-1, -1, -1}
	counts := [3]int{len(p.positions), len(p.uvs), len(p.normals)}
	for i, s := range parts {
		if s == "" {
			if i == 0 {
				return 0, fmt.Errorf("bad vertex reference %q", ref)
			}
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("bad vertex reference %q: %w", ref, err)
		}
		// negative indices count back from the latest element
		if n < 0 {
			n += counts[i]
		} else {
			n--
		}
		if n < 0 || n >= counts[i] {
			return 0, fmt.Errorf("vertex reference %q out of range", ref)
		}
		key[i] = n
	}

	if idx, ok := p.verts[key]; ok {
		return idx, nil
	}
	v := MeshVertex{Position: p.positions[key[0]]}
	if key[1] >= 0 {
		v.UV = p.uvs[key[1]]
	}
	if key[2] >= 0 {
		v.Normal = p.normals[key[2]]
	}
	idx := len(p.mesh.Vertices)
	p.mesh.Vertices = append(p.mesh.Vertices, v)
	p.verts[key] = idx
	return idx, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

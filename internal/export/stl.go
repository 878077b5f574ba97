// Package export serializes meshes and station reports for downstream
// CFD and reporting tools: STL (binary and ASCII), OBJ with boundary
// patch groups, PLY, and CSV/JSON station tables.
package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/hydrocad/hydrocad/internal/geom"
	"github.com/hydrocad/hydrocad/internal/mesh"
)

// WriteSTL writes the triangulated mesh as binary STL: 80-byte header,
// triangle count, then per-triangle normal, vertices and attribute
// word, all little-endian float32.
func WriteSTL(w io.Writer, m *mesh.Mesh) error {
	tris, _ := m.Triangulate()

	var header [80]byte
	copy(header[:], "hydrocad "+m.Name)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("stl header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(tris))); err != nil {
		return fmt.Errorf("stl triangle count: %w", err)
	}

	buf := make([]byte, 50)
	for _, t := range tris {
		a := m.Vertices[t[0]]
		b := m.Vertices[t[1]]
		c := m.Vertices[t[2]]
		n := triangleNormal(a, b, c)

		off := 0
		for _, v := range []geom.Vec3{n, a, b, c} {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(float32(v.X)))
			binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(float32(v.Y)))
			binary.LittleEndian.PutUint32(buf[off+8:], math.Float32bits(float32(v.Z)))
			off += 12
		}
		binary.LittleEndian.PutUint16(buf[48:], 0)
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("stl triangle: %w", err)
		}
	}
	return nil
}

// WriteSTLASCII writes the triangulated mesh as ASCII STL.
func WriteSTLASCII(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	name := solidName(m.Name)
	fmt.Fprintf(bw, "solid %s\n", name)

	tris, _ := m.Triangulate()
	for _, t := range tris {
		a := m.Vertices[t[0]]
		b := m.Vertices[t[1]]
		c := m.Vertices[t[2]]
		n := triangleNormal(a, b, c)
		fmt.Fprintf(bw, "  facet normal %e %e %e\n", n.X, n.Y, n.Z)
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range []geom.Vec3{a, b, c} {
			fmt.Fprintf(bw, "      vertex %e %e %e\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("stl ascii: %w", err)
	}
	return nil
}

// SaveSTL writes the mesh to path, appending the .stl extension when
// missing.
func SaveSTL(path string, m *mesh.Mesh, asciiFormat bool) error {
	path = ensureExt(path, ".stl")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export stl: %w", err)
	}
	defer f.Close()

	if asciiFormat {
		err = WriteSTLASCII(f, m)
	} else {
		err = WriteSTL(f, m)
	}
	if err != nil {
		return fmt.Errorf("export stl %s: %w", path, err)
	}
	return f.Close()
}

func triangleNormal(a, b, c geom.Vec3) geom.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Length() < 1e-18 {
		return geom.Vec3{}
	}
	return n.Normalized()
}

func solidName(name string) string {
	if name == "" {
		return "mesh"
	}
	return strings.ReplaceAll(name, " ", "_")
}

func ensureExt(path, ext string) string {
	if strings.HasSuffix(strings.ToLower(path), ext) {
		return path
	}
	return path + ext
}

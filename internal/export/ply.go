package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/hydrocad/hydrocad/internal/mesh"
)

// WritePLY writes the mesh in ASCII PLY format, keeping polygonal faces
// intact (PLY face elements are variable-length).
func WritePLY(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ply\n")
	fmt.Fprintf(bw, "format ascii 1.0\n")
	fmt.Fprintf(bw, "comment hydrocad mesh %s\n", solidName(m.Name))
	fmt.Fprintf(bw, "element vertex %d\n", len(m.Vertices))
	fmt.Fprintf(bw, "property float x\n")
	fmt.Fprintf(bw, "property float y\n")
	fmt.Fprintf(bw, "property float z\n")
	fmt.Fprintf(bw, "element face %d\n", len(m.Faces))
	fmt.Fprintf(bw, "property list uchar int vertex_indices\n")
	fmt.Fprintf(bw, "end_header\n")

	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "%.6f %.6f %.6f\n", v.X, v.Y, v.Z)
	}
	for _, f := range m.Faces {
		fmt.Fprintf(bw, "%d", len(f))
		for _, vi := range f {
			fmt.Fprintf(bw, " %d", vi)
		}
		fmt.Fprintf(bw, "\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("ply: %w", err)
	}
	return nil
}

// SavePLY writes the mesh to path, appending the .ply extension when
// missing.
func SavePLY(path string, m *mesh.Mesh) error {
	path = ensureExt(path, ".ply")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export ply: %w", err)
	}
	defer f.Close()
	if err := WritePLY(f, m); err != nil {
		return fmt.Errorf("export ply %s: %w", path, err)
	}
	return f.Close()
}

package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/hydrocad/hydrocad/internal/mesh"
)

// WriteOBJ writes the mesh as Wavefront OBJ. Domain meshes emit one
// `g` group per boundary patch so CFD preprocessors can pick patches
// by name; faces outside any patch go into a default group.
func WriteOBJ(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# hydrocad mesh export\n")
	fmt.Fprintf(bw, "o %s\n", solidName(m.Name))

	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", v.X, v.Y, v.Z)
	}

	writeFace := func(f []int) {
		fmt.Fprintf(bw, "f")
		for _, vi := range f {
			// OBJ indices are 1-based.
			fmt.Fprintf(bw, " %d", vi+1)
		}
		fmt.Fprintf(bw, "\n")
	}

	if len(m.Patches) == 0 {
		for _, f := range m.Faces {
			writeFace(f)
		}
	} else {
		tagged := make(map[int]bool)
		for _, p := range patchOrder(m) {
			fmt.Fprintf(bw, "g %s\n", p)
			for _, fi := range m.Patches[p] {
				writeFace(m.Faces[fi])
				tagged[fi] = true
			}
		}
		first := true
		for fi, f := range m.Faces {
			if tagged[fi] {
				continue
			}
			if first {
				fmt.Fprintf(bw, "g default\n")
				first = false
			}
			writeFace(f)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("obj: %w", err)
	}
	return nil
}

// SaveOBJ writes the mesh to path, appending the .obj extension when
// missing.
func SaveOBJ(path string, m *mesh.Mesh) error {
	path = ensureExt(path, ".obj")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export obj: %w", err)
	}
	defer f.Close()
	if err := WriteOBJ(f, m); err != nil {
		return fmt.Errorf("export obj %s: %w", path, err)
	}
	return f.Close()
}

// patchOrder fixes the group order so exports are deterministic:
// inlet, outlet, walls, top, then anything else alphabetically.
func patchOrder(m *mesh.Mesh) []mesh.Patch {
	known := []mesh.Patch{mesh.PatchInlet, mesh.PatchOutlet, mesh.PatchWalls, mesh.PatchTop}
	var out []mesh.Patch
	seen := make(map[mesh.Patch]bool)
	for _, p := range known {
		if _, ok := m.Patches[p]; ok {
			out = append(out, p)
			seen[p] = true
		}
	}
	var rest []mesh.Patch
	for p := range m.Patches {
		if !seen[p] {
			rest = append(rest, p)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(out, rest...)
}

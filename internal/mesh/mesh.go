// Package mesh builds and inspects the swept channel geometry: the
// channel shell, the derived CFD fluid domain, and the topology
// validation that gates export.
package mesh

import (
	"github.com/hydrocad/hydrocad/internal/geom"
)

// Patch identifies a boundary patch of a domain mesh.
type Patch string

const (
	PatchInlet  Patch = "inlet"
	PatchOutlet Patch = "outlet"
	PatchWalls  Patch = "walls"
	PatchTop    Patch = "top"
)

// Mesh is a polygonal mesh owned exclusively by its caller. Faces index
// into Vertices. Patches, when present, map boundary patch names to
// face indices (domain meshes only).
//
// A Mesh keeps its identity across rebuilds: builders replace the
// geometry of an existing mesh in place rather than allocating a new
// one, so host-side references never go stale.
type Mesh struct {
	Name     string
	Vertices []geom.Vec3
	Faces    [][]int
	Patches  map[Patch][]int

	// Source links a domain mesh back to the sweep mesh it was derived
	// from, so a rebuild of the source can regenerate the domain
	// consistently. Nil for sweep meshes.
	Source *Mesh
}

// replaceWith swaps in the geometry of another mesh while keeping the
// receiver's identity. Used by builders for in-place regeneration.
func (m *Mesh) replaceWith(src *Mesh) {
	m.Vertices = src.Vertices
	m.Faces = src.Faces
	m.Patches = src.Patches
	m.Source = src.Source
	if src.Name != "" {
		m.Name = src.Name
	}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// FaceCount returns the number of polygonal faces.
func (m *Mesh) FaceCount() int { return len(m.Faces) }

// Triangle is one triangle of a triangulated mesh, by vertex index.
type Triangle [3]int

// Triangulate fans every polygonal face into triangles. The mesh is
// not modified; face order is preserved so triangle i/.. can be mapped
// back to its source face via the returned face index slice.
func (m *Mesh) Triangulate() ([]Triangle, []int) {
	var tris []Triangle
	var faceOf []int
	for fi, f := range m.Faces {
		for i := 1; i < len(f)-1; i++ {
			tris = append(tris, Triangle{f[0], f[i], f[i+1]})
			faceOf = append(faceOf, fi)
		}
	}
	return tris, faceOf
}

// PatchArea returns the total area of the faces tagged with the patch.
func (m *Mesh) PatchArea(p Patch) float64 {
	var area float64
	for _, fi := range m.Patches[p] {
		area += m.faceArea(fi)
	}
	return area
}

func (m *Mesh) faceArea(fi int) float64 {
	f := m.Faces[fi]
	var area float64
	for i := 1; i < len(f)-1; i++ {
		a := m.Vertices[f[0]]
		b := m.Vertices[f[i]]
		c := m.Vertices[f[i+1]]
		area += b.Sub(a).Cross(c.Sub(a)).Length() / 2
	}
	return area
}

// BuildError indicates the sweep builder was given inconsistent input.
type BuildError struct {
	Reason string
}

func (e *BuildError) Error() string {
	return "mesh build failed: " + e.Reason
}

// DomainError indicates a fluid domain could not be derived.
type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string {
	return "domain build failed: " + e.Reason
}

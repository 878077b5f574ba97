package mesh

import (
	"sort"

	"github.com/hydrocad/hydrocad/internal/geom"
)

// Report is an immutable topology snapshot of one mesh. Validation
// never fails in the error sense: a broken mesh is a result, not an
// error.
type Report struct {
	IsManifold            bool    `json:"is_manifold"`
	IsWatertight          bool    `json:"is_watertight"`
	OrientationConsistent bool    `json:"orientation_consistent"`
	BoundaryEdgeCount     int     `json:"boundary_edge_count"`
	NonManifoldEdgeCount  int     `json:"non_manifold_edge_count"`
	SelfIntersectionCount int     `json:"self_intersection_count"`
	Volume                float64 `json:"volume_m3"`
	SurfaceArea           float64 `json:"surface_area_m2"`
	VertexCount           int     `json:"vertex_count"`
	FaceCount             int     `json:"face_count"`
	TriangleCount         int     `json:"triangle_count"`
}

// ValidateOptions tunes what the validator treats as expected.
type ValidateOptions struct {
	// ExpectOpenBoundary marks boundary edges as intentional (an
	// unlined open channel has them along its crown and ends) instead
	// of counting them as broken topology.
	ExpectOpenBoundary bool

	// SkipSelfIntersection disables the pairwise triangle test, which
	// is the only non-linear-cost check.
	SkipSelfIntersection bool
}

type edgeKey struct{ a, b int }

// Validate inspects a mesh without mutating it: edge sharing
// (manifoldness and watertightness), winding consistency, pairwise
// self-intersections, enclosed volume by the divergence theorem, and
// surface area.
func Validate(m *Mesh, opts ValidateOptions) Report {
	rep := Report{
		VertexCount: len(m.Vertices),
		FaceCount:   len(m.Faces),
	}

	// Edge census. dir tracks winding balance: a consistently oriented
	// closed surface traverses every interior edge once per direction.
	count := map[edgeKey]int{}
	dir := map[edgeKey]int{}
	for _, f := range m.Faces {
		for i := range f {
			a := f[i]
			b := f[(i+1)%len(f)]
			k := edgeKey{a, b}
			d := 1
			if a > b {
				k = edgeKey{b, a}
				d = -1
			}
			count[k]++
			dir[k] += d
		}
	}

	overShared := 0
	consistent := true
	for k, c := range count {
		switch {
		case c == 1:
			rep.BoundaryEdgeCount++
		case c > 2:
			overShared++
		default:
			if dir[k] != 0 {
				consistent = false
			}
		}
	}
	rep.OrientationConsistent = consistent
	rep.NonManifoldEdgeCount = overShared
	if !opts.ExpectOpenBoundary {
		rep.NonManifoldEdgeCount += rep.BoundaryEdgeCount
	}
	rep.IsManifold = overShared == 0 && (rep.BoundaryEdgeCount == 0 || opts.ExpectOpenBoundary)
	rep.IsWatertight = overShared == 0 && rep.BoundaryEdgeCount == 0 && consistent

	tris, _ := m.Triangulate()
	rep.TriangleCount = len(tris)

	for _, t := range tris {
		a := m.Vertices[t[0]]
		b := m.Vertices[t[1]]
		c := m.Vertices[t[2]]
		rep.SurfaceArea += b.Sub(a).Cross(c.Sub(a)).Length() / 2
		rep.Volume += a.Dot(b.Cross(c)) / 6
	}
	if rep.Volume < 0 {
		rep.Volume = -rep.Volume
	}
	if !rep.IsWatertight {
		// Enclosed volume is meaningless for an open surface.
		rep.Volume = 0
	}

	if !opts.SkipSelfIntersection {
		rep.SelfIntersectionCount = countSelfIntersections(m.Vertices, tris)
	}
	return rep
}

type triBox struct {
	idx        int
	min, max   geom.Vec3
	minX, maxX float64
}

// countSelfIntersections runs an axis-sorted sweep over triangle
// bounding boxes as broad phase, then the exact pairwise test on
// surviving candidates. Triangles sharing a vertex are skipped: ring
// stitching makes those contacts by construction.
func countSelfIntersections(verts []geom.Vec3, tris []Triangle) int {
	boxes := make([]triBox, len(tris))
	for i, t := range tris {
		b := triBox{idx: i}
		b.min = verts[t[0]]
		b.max = verts[t[0]]
		for _, vi := range t[1:] {
			b.min = vecMin(b.min, verts[vi])
			b.max = vecMax(b.max, verts[vi])
		}
		b.minX, b.maxX = b.min.X, b.max.X
		boxes[i] = b
	}
	sort.Slice(boxes, func(i, j int) bool { return boxes[i].minX < boxes[j].minX })

	count := 0
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if boxes[j].minX > boxes[i].maxX {
				break
			}
			if !boxOverlap(boxes[i], boxes[j]) {
				continue
			}
			ta := tris[boxes[i].idx]
			tb := tris[boxes[j].idx]
			if sharesVertex(ta, tb) {
				continue
			}
			if trianglesIntersect(
				verts[ta[0]], verts[ta[1]], verts[ta[2]],
				verts[tb[0]], verts[tb[1]], verts[tb[2]],
			) {
				count++
			}
		}
	}
	return count
}

func boxOverlap(a, b triBox) bool {
	return a.min.X <= b.max.X && b.min.X <= a.max.X &&
		a.min.Y <= b.max.Y && b.min.Y <= a.max.Y &&
		a.min.Z <= b.max.Z && b.min.Z <= a.max.Z
}

func sharesVertex(a, b Triangle) bool {
	for _, va := range a {
		for _, vb := range b {
			if va == vb {
				return true
			}
		}
	}
	return false
}

func vecMin(a, b geom.Vec3) geom.Vec3 {
	return geom.Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)}
}

func vecMax(a, b geom.Vec3) geom.Vec3 {
	return geom.Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)}
}

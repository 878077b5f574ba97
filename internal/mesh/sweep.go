package mesh

import (
	"fmt"

	"github.com/hydrocad/hydrocad/internal/geom"
	"github.com/hydrocad/hydrocad/internal/profile"
)

// SweepOptions carries the cooperative hooks for a sweep build.
type SweepOptions struct {
	Name     string
	Progress geom.ProgressFunc
	Cancel   geom.CancelFunc
}

// BuildSweep extrudes the profile along the frame track and stitches
// consecutive rings into quad faces.
//
// Open sections emit one strip per profile edge (floor and walls, no
// roof). When the profile carries an outer shell the builder stitches
// inner shell, outer shell, the longitudinal top caps joining them and
// the start/end caps, producing a single watertight solid even though
// the channel stays open at the top. Closed sections become full
// tubes; pipes with their wall become annular solids.
//
// The build is deterministic: identical inputs yield identical vertex
// and face data.
func BuildSweep(set *geom.SampleSet, track *geom.FrameTrack, prof *profile.Profile, opts SweepOptions) (*Mesh, error) {
	if set == nil || track == nil || len(set.Samples) < 2 {
		return nil, &BuildError{Reason: "need at least 2 frames"}
	}
	if len(track.Frames) != len(set.Samples) {
		return nil, &BuildError{Reason: fmt.Sprintf("frame count %d does not match sample count %d", len(track.Frames), len(set.Samples))}
	}
	if prof.Outer != nil && len(prof.Outer.Points) != len(prof.Inner.Points) {
		return nil, &BuildError{Reason: fmt.Sprintf("inner ring has %d points, outer ring %d", len(prof.Inner.Points), len(prof.Outer.Points))}
	}

	n := len(set.Samples)
	k := len(prof.Inner.Points)
	lined := prof.Outer != nil

	m := &Mesh{Name: opts.Name}
	m.Vertices = make([]geom.Vec3, 0, n*k*vertexShells(lined))
	for i := 0; i < n; i++ {
		appendRing(m, set.Samples[i].Position, track.Frames[i], prof.Inner)
	}
	if lined {
		for i := 0; i < n; i++ {
			appendRing(m, set.Samples[i].Position, track.Frames[i], *prof.Outer)
		}
	}

	inner := func(ring, j int) int { return ring*k + j%k }
	outer := func(ring, j int) int { return n*k + ring*k + j%k }

	segs := set.SegmentCount()
	edges := prof.Inner.EdgeCount()
	for i := 0; i < segs; i++ {
		if opts.Cancel != nil && opts.Cancel() {
			return nil, &geom.CancelledError{Op: "sweep build"}
		}
		next := (i + 1) % n

		for j := 0; j < edges; j++ {
			m.Faces = append(m.Faces, []int{inner(i, j), inner(i, j+1), inner(next, j+1), inner(next, j)})
		}
		if lined {
			for j := 0; j < edges; j++ {
				m.Faces = append(m.Faces, []int{outer(i, j), outer(next, j), outer(next, j+1), outer(i, j+1)})
			}
			// Longitudinal top caps joining the shells along the open
			// crown edges.
			if !prof.Inner.Closed {
				last := k - 1
				m.Faces = append(m.Faces,
					[]int{inner(i, 0), inner(next, 0), outer(next, 0), outer(i, 0)},
					[]int{inner(next, last), inner(i, last), outer(i, last), outer(next, last)},
				)
			}
		}

		if opts.Progress != nil {
			opts.Progress(float64(i+1)/float64(segs), fmt.Sprintf("segment %d/%d", i+1, segs))
		}
	}

	// End caps close a lined or annular section at both axis ends.
	// Cyclic sweeps have no ends.
	if lined && !set.Cyclic {
		last := n - 1
		for j := 0; j < edges; j++ {
			m.Faces = append(m.Faces, []int{inner(0, j+1), inner(0, j), outer(0, j), outer(0, j+1)})
		}
		for j := 0; j < edges; j++ {
			m.Faces = append(m.Faces, []int{inner(last, j), inner(last, j+1), outer(last, j+1), outer(last, j)})
		}
	}

	return m, nil
}

// RebuildSweep regenerates an existing sweep mesh in place. On failure
// the mesh keeps its previous geometry; no partial build escapes.
func RebuildSweep(m *Mesh, set *geom.SampleSet, track *geom.FrameTrack, prof *profile.Profile, opts SweepOptions) error {
	rebuilt, err := BuildSweep(set, track, prof, opts)
	if err != nil {
		return err
	}
	m.replaceWith(rebuilt)
	return nil
}

func appendRing(m *Mesh, pos geom.Vec3, f geom.Frame, ring profile.Ring) {
	for _, p := range ring.Points {
		m.Vertices = append(m.Vertices, pos.Add(f.Binormal.Scale(p.X)).Add(f.Normal.Scale(p.Y)))
	}
}

func vertexShells(lined bool) int {
	if lined {
		return 2
	}
	return 1
}

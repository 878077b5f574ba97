package mesh

import (
	"fmt"

	"github.com/hydrocad/hydrocad/internal/geom"
	"github.com/hydrocad/hydrocad/internal/profile"
)

// DomainOptions configures fluid-domain derivation.
type DomainOptions struct {
	Name string

	// InletExtension and OutletExtension prolong the domain along the
	// end tangents (meters) to give the solver flow development
	// length. Ignored on cyclic axes.
	InletExtension  float64
	OutletExtension float64

	Progress geom.ProgressFunc
	Cancel   geom.CancelFunc
}

// BuildDomain derives the watertight CFD fluid volume from the same
// curve and section data a sweep mesh was built from. The domain always
// fills the full section height (design depth plus freeboard) so no
// unsimulated gap is left at the top.
//
// Faces are tagged into boundary patches: inlet (start cap), outlet
// (end cap), walls (floor and side faces) and top (the free-surface
// strip, open-channel sections only). Cyclic axes produce a closed
// ring domain with no inlet or outlet.
//
// source links the returned mesh back to the sweep mesh it belongs to;
// it must be topologically sound or the derivation fails with
// DomainError.
func BuildDomain(source *Mesh, set *geom.SampleSet, track *geom.FrameTrack, spec profile.SectionSpec, opts DomainOptions) (*Mesh, error) {
	if set == nil || track == nil || len(set.Samples) < 2 {
		return nil, &DomainError{Reason: "need at least 2 frames"}
	}
	if source != nil {
		rep := Validate(source, ValidateOptions{
			ExpectOpenBoundary:   spec.Type.IsOpen() || spec.LiningThickness == 0,
			SkipSelfIntersection: true,
		})
		if !rep.IsManifold {
			return nil, &DomainError{Reason: fmt.Sprintf("source mesh is non-manifold (%d bad edges)", rep.NonManifoldEdgeCount)}
		}
	}

	ring, topEdge, err := fluidRing(spec)
	if err != nil {
		return nil, err
	}
	k := len(ring.Points)

	stations := domainStations(set, track, opts)
	n := len(stations)

	m := &Mesh{Name: opts.Name, Source: source, Patches: map[Patch][]int{}}
	for _, st := range stations {
		appendRing(m, st.pos, st.frame, ring)
	}

	at := func(ringIdx, j int) int { return ringIdx*k + j%k }

	segs := n - 1
	if set.Cyclic {
		segs = n
	}
	for i := 0; i < segs; i++ {
		if opts.Cancel != nil && opts.Cancel() {
			return nil, &geom.CancelledError{Op: "domain build"}
		}
		next := (i + 1) % n
		for j := 0; j < k; j++ {
			fi := len(m.Faces)
			m.Faces = append(m.Faces, []int{at(i, j), at(i, j+1), at(next, j+1), at(next, j)})
			if j == topEdge {
				m.Patches[PatchTop] = append(m.Patches[PatchTop], fi)
			} else {
				m.Patches[PatchWalls] = append(m.Patches[PatchWalls], fi)
			}
		}
		if opts.Progress != nil {
			opts.Progress(float64(i+1)/float64(segs), fmt.Sprintf("domain segment %d/%d", i+1, segs))
		}
	}

	// Cap the open ends into inlet and outlet patches; a cyclic domain
	// has none.
	if !set.Cyclic {
		for j := 1; j < k-1; j++ {
			fi := len(m.Faces)
			m.Faces = append(m.Faces, []int{at(0, 0), at(0, j+1), at(0, j)})
			m.Patches[PatchInlet] = append(m.Patches[PatchInlet], fi)
		}
		last := n - 1
		for j := 1; j < k-1; j++ {
			fi := len(m.Faces)
			m.Faces = append(m.Faces, []int{at(last, 0), at(last, j), at(last, j+1)})
			m.Patches[PatchOutlet] = append(m.Patches[PatchOutlet], fi)
		}
	}

	return m, nil
}

// RebuildDomain regenerates an existing domain mesh in place, keeping
// its identity and its source link.
func RebuildDomain(m *Mesh, set *geom.SampleSet, track *geom.FrameTrack, spec profile.SectionSpec, opts DomainOptions) error {
	src := m.Source
	rebuilt, err := BuildDomain(src, set, track, spec, opts)
	if err != nil {
		return err
	}
	m.replaceWith(rebuilt)
	return nil
}

// fluidRing returns the closed fluid cross-section and the index of the
// free-surface edge (-1 when the section has no top plane).
func fluidRing(spec profile.SectionSpec) (profile.Ring, int, error) {
	switch spec.Type {
	case profile.Trapezoidal, profile.Rectangular, profile.Triangular:
		prof, err := profile.Build(spec)
		if err != nil {
			return profile.Ring{}, 0, err
		}
		ring := profile.Ring{
			Points: prof.Inner.Points,
			Roles:  prof.Inner.Roles,
			Closed: true,
		}
		// Closing the open outline adds the crown-to-crown free
		// surface as the last edge.
		return ring, len(ring.Points) - 1, nil

	case profile.Circular:
		prof, err := profile.Build(spec)
		if err != nil {
			return profile.Ring{}, 0, err
		}
		return prof.Inner, -1, nil

	case profile.Pipe:
		// The fluid fills the hydraulic bore only.
		prof, err := profile.Build(spec)
		if err != nil {
			return profile.Ring{}, 0, err
		}
		return prof.Inner, -1, nil
	}
	return profile.Ring{}, 0, &DomainError{Reason: fmt.Sprintf("unsupported section type %q", spec.Type)}
}

type domainStation struct {
	pos   geom.Vec3
	frame geom.Frame
}

// domainStations lists the ring placements: the sampled axis stations,
// plus straight extensions along the end tangents when requested.
// Extension rings reuse the boundary frame so the section does not
// twist through the extension.
func domainStations(set *geom.SampleSet, track *geom.FrameTrack, opts DomainOptions) []domainStation {
	n := len(set.Samples)
	step := averageSpacing(set)
	var out []domainStation

	if !set.Cyclic && opts.InletExtension > 0 {
		first := set.Samples[0]
		f0 := track.Frames[0]
		for _, d := range extensionDistances(opts.InletExtension, step) {
			out = append(out, domainStation{
				pos:   first.Position.Sub(f0.Tangent.Scale(d)),
				frame: f0,
			})
		}
		// Extensions were generated far-to-near; reverse into axis order.
		reverseStations(out)
	}

	for i := 0; i < n; i++ {
		out = append(out, domainStation{pos: set.Samples[i].Position, frame: track.Frames[i]})
	}

	if !set.Cyclic && opts.OutletExtension > 0 {
		last := set.Samples[n-1]
		fl := track.Frames[n-1]
		for _, d := range extensionDistances(opts.OutletExtension, step) {
			out = append(out, domainStation{
				pos:   last.Position.Add(fl.Tangent.Scale(d)),
				frame: fl,
			})
		}
	}
	return out
}

// extensionDistances returns the offsets step, 2*step, ... clamped and
// terminated at the full extension length.
func extensionDistances(ext, step float64) []float64 {
	if step <= 0 || step > ext {
		step = ext
	}
	var out []float64
	for d := step; d < ext-1e-9; d += step {
		out = append(out, d)
	}
	out = append(out, ext)
	return out
}

func averageSpacing(set *geom.SampleSet) float64 {
	if segs := set.SegmentCount(); segs > 0 {
		return set.Length / float64(segs)
	}
	return 0
}

func reverseStations(s []domainStation) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

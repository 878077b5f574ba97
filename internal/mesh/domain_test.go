package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrocad/hydrocad/internal/geom"
	"github.com/hydrocad/hydrocad/internal/profile"
)

func TestBuildDomainOpenChannel(t *testing.T) {
	set, track, prof := pipeline(t, straightAxis(100), rectSpec(), 5)
	sweep, err := BuildSweep(set, track, prof, SweepOptions{})
	require.NoError(t, err)

	dom, err := BuildDomain(sweep, set, track, rectSpec(), DomainOptions{Name: "fluid"})
	require.NoError(t, err)
	assert.Same(t, sweep, dom.Source)

	// The free surface becomes its own patch above the walls.
	assert.Len(t, dom.Patches[PatchTop], 20)
	assert.Len(t, dom.Patches[PatchWalls], 60)
	assert.Len(t, dom.Patches[PatchInlet], 2)
	assert.Len(t, dom.Patches[PatchOutlet], 2)

	rep := Validate(dom, ValidateOptions{})
	assert.True(t, rep.IsWatertight)
	assert.True(t, rep.OrientationConsistent)
	assert.Zero(t, rep.SelfIntersectionCount)
	// Full-depth prism: 2 m x 1.5 m x 100 m.
	assert.InDelta(t, 300.0, rep.Volume, 1e-6)

	assert.InDelta(t, 3.0, dom.PatchArea(PatchInlet), 1e-9)
	assert.InDelta(t, 3.0, dom.PatchArea(PatchOutlet), 1e-9)
	assert.InDelta(t, 200.0, dom.PatchArea(PatchTop), 1e-6)
}

func TestBuildDomainPipeHasNoTop(t *testing.T) {
	spec := profile.SectionSpec{
		Type: profile.Pipe, PipeMaterial: profile.HDPE, PipeDN: 200, PipeSDR: 17,
		CircleSegments: 16,
	}
	set, track, prof := pipeline(t, straightAxis(50), spec, 5)
	sweep, err := BuildSweep(set, track, prof, SweepOptions{})
	require.NoError(t, err)

	dom, err := BuildDomain(sweep, set, track, spec, DomainOptions{})
	require.NoError(t, err)

	assert.NotContains(t, dom.Patches, PatchTop)
	assert.Contains(t, dom.Patches, PatchInlet)
	assert.Contains(t, dom.Patches, PatchOutlet)
	assert.Contains(t, dom.Patches, PatchWalls)

	rep := Validate(dom, ValidateOptions{SkipSelfIntersection: true})
	assert.True(t, rep.IsWatertight)
}

func TestBuildDomainCyclic(t *testing.T) {
	set, track, _ := pipeline(t, squareLoop(10), rectSpec(), 2)
	dom, err := BuildDomain(nil, set, track, rectSpec(), DomainOptions{})
	require.NoError(t, err)

	// A closed ring domain has no flow boundaries.
	assert.NotContains(t, dom.Patches, PatchInlet)
	assert.NotContains(t, dom.Patches, PatchOutlet)
	assert.Contains(t, dom.Patches, PatchWalls)
	assert.Contains(t, dom.Patches, PatchTop)

	rep := Validate(dom, ValidateOptions{SkipSelfIntersection: true})
	assert.True(t, rep.IsWatertight)
}

func TestBuildDomainExtensions(t *testing.T) {
	set, track, _ := pipeline(t, straightAxis(100), rectSpec(), 5)

	plain, err := BuildDomain(nil, set, track, rectSpec(), DomainOptions{})
	require.NoError(t, err)
	extended, err := BuildDomain(nil, set, track, rectSpec(), DomainOptions{
		InletExtension:  10,
		OutletExtension: 10,
	})
	require.NoError(t, err)

	// 10 m at the 5 m sample spacing adds two rings per end.
	assert.Equal(t, plain.VertexCount()+4*4, extended.VertexCount())

	// The extensions run straight along the end tangents.
	lowest, highest := extended.Vertices[0].X, extended.Vertices[0].X
	for _, v := range extended.Vertices {
		lowest = min(lowest, v.X)
		highest = max(highest, v.X)
	}
	assert.InDelta(t, -10.0, lowest, 1e-9)
	assert.InDelta(t, 110.0, highest, 1e-9)

	rep := Validate(extended, ValidateOptions{})
	assert.True(t, rep.IsWatertight)
	assert.InDelta(t, 2*1.5*120, rep.Volume, 1e-6)
}

func TestBuildDomainRejectsBrokenSource(t *testing.T) {
	set, track, prof := pipeline(t, straightAxis(100), rectSpec(), 5)
	sweep, err := BuildSweep(set, track, prof, SweepOptions{})
	require.NoError(t, err)

	// Duplicate a face: the shared edges become over-shared.
	sweep.Faces = append(sweep.Faces, sweep.Faces[0])

	_, err = BuildDomain(sweep, set, track, rectSpec(), DomainOptions{})
	var domErr *DomainError
	require.ErrorAs(t, err, &domErr)
}

func TestBuildDomainInputErrors(t *testing.T) {
	set, track, _ := pipeline(t, straightAxis(100), rectSpec(), 5)
	var domErr *DomainError

	_, err := BuildDomain(nil, nil, track, rectSpec(), DomainOptions{})
	require.ErrorAs(t, err, &domErr)

	_, err = BuildDomain(nil, set, track, profile.SectionSpec{Type: "HEX"}, DomainOptions{})
	require.Error(t, err)
}

func TestRebuildDomainKeepsSource(t *testing.T) {
	set, track, prof := pipeline(t, straightAxis(100), rectSpec(), 5)
	sweep, err := BuildSweep(set, track, prof, SweepOptions{})
	require.NoError(t, err)
	dom, err := BuildDomain(sweep, set, track, rectSpec(), DomainOptions{Name: "fluid"})
	require.NoError(t, err)

	set2, track2, _ := pipeline(t, straightAxis(100), rectSpec(), 10)
	require.NoError(t, RebuildDomain(dom, set2, track2, rectSpec(), DomainOptions{}))
	assert.Equal(t, "fluid", dom.Name)
	assert.Same(t, sweep, dom.Source)
	assert.Equal(t, 11*4, dom.VertexCount())
}

func TestBuildDomainCancel(t *testing.T) {
	set, track, _ := pipeline(t, straightAxis(100), rectSpec(), 5)
	_, err := BuildDomain(nil, set, track, rectSpec(), DomainOptions{
		Cancel: func() bool { return true },
	})
	var cancelled *geom.CancelledError
	require.ErrorAs(t, err, &cancelled)
}

package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrocad/hydrocad/internal/geom"
	"github.com/hydrocad/hydrocad/internal/profile"
)

func straightAxis(length float64) geom.Axis {
	return geom.Axis{Points: []geom.Vec3{{}, {X: length}}}
}

func squareLoop(side float64) geom.Axis {
	return geom.Axis{
		Points: []geom.Vec3{
			{},
			{X: side},
			{X: side, Y: side},
			{Y: side},
		},
		Cyclic: true,
	}
}

// pipeline samples an axis, propagates frames and builds the profile in
// one go for tests.
func pipeline(t *testing.T, axis geom.Axis, spec profile.SectionSpec, step float64) (*geom.SampleSet, *geom.FrameTrack, *profile.Profile) {
	t.Helper()
	set, err := geom.SampleAxis(axis, geom.Resolution{Step: step})
	require.NoError(t, err)
	track, err := geom.PropagateFrames(set, geom.Vec3{})
	require.NoError(t, err)
	prof, err := profile.Build(spec)
	require.NoError(t, err)
	return set, track, prof
}

func rectSpec() profile.SectionSpec {
	return profile.SectionSpec{Type: profile.Rectangular, BottomWidth: 2, Height: 1.5}
}

func TestBuildSweepOpenRectangular(t *testing.T) {
	set, track, prof := pipeline(t, straightAxis(100), rectSpec(), 5)
	m, err := BuildSweep(set, track, prof, SweepOptions{Name: "channel"})
	require.NoError(t, err)

	// 21 rings of 4 points, 20 segments of 3 strips.
	assert.Equal(t, 84, m.VertexCount())
	assert.Equal(t, 60, m.FaceCount())
	assert.Equal(t, "channel", m.Name)

	rep := Validate(m, ValidateOptions{ExpectOpenBoundary: true})
	assert.True(t, rep.IsManifold)
	assert.False(t, rep.IsWatertight)
	assert.True(t, rep.OrientationConsistent)
	assert.Zero(t, rep.NonManifoldEdgeCount)
	assert.Zero(t, rep.SelfIntersectionCount)
	// Floor 2x100 plus two 1.5x100 walls.
	assert.InDelta(t, 500.0, rep.SurfaceArea, 1e-6)
}

func TestBuildSweepDeterministic(t *testing.T) {
	set, track, prof := pipeline(t, straightAxis(100), rectSpec(), 5)
	a, err := BuildSweep(set, track, prof, SweepOptions{})
	require.NoError(t, err)
	b, err := BuildSweep(set, track, prof, SweepOptions{})
	require.NoError(t, err)

	assert.Equal(t, a.Vertices, b.Vertices)
	assert.Equal(t, a.Faces, b.Faces)
}

func TestBuildSweepLinedIsWatertight(t *testing.T) {
	spec := rectSpec()
	spec.LiningThickness = 0.2
	set, track, prof := pipeline(t, straightAxis(100), spec, 5)
	m, err := BuildSweep(set, track, prof, SweepOptions{})
	require.NoError(t, err)

	// Two shells plus top caps and end caps.
	assert.Equal(t, 168, m.VertexCount())
	assert.Equal(t, 166, m.FaceCount())

	rep := Validate(m, ValidateOptions{})
	assert.True(t, rep.IsWatertight)
	assert.True(t, rep.OrientationConsistent)
	assert.Zero(t, rep.BoundaryEdgeCount)
	// Lining solid: outer 2.4x1.7 minus inner 2.0x1.5 cross-section.
	assert.InDelta(t, (2.4*1.7-2.0*1.5)*100, rep.Volume, 1e-6)
}

func TestBuildSweepCircularTube(t *testing.T) {
	spec := profile.SectionSpec{Type: profile.Circular, BottomWidth: 1.2, CircleSegments: 16}
	set, track, prof := pipeline(t, straightAxis(100), spec, 5)
	m, err := BuildSweep(set, track, prof, SweepOptions{})
	require.NoError(t, err)

	assert.Equal(t, 21*16, m.VertexCount())
	assert.Equal(t, 20*16, m.FaceCount())

	// An uncapped tube has exactly the two rim rings as boundary.
	rep := Validate(m, ValidateOptions{ExpectOpenBoundary: true})
	assert.True(t, rep.IsManifold)
	assert.Equal(t, 32, rep.BoundaryEdgeCount)
}

func TestBuildSweepPipeAnnular(t *testing.T) {
	spec := profile.SectionSpec{
		Type: profile.Pipe, PipeMaterial: profile.HDPE, PipeDN: 200, PipeSDR: 17,
		CircleSegments: 32,
	}
	set, track, prof := pipeline(t, straightAxis(100), spec, 5)
	m, err := BuildSweep(set, track, prof, SweepOptions{})
	require.NoError(t, err)

	// Inner bore, outer wall, annular end caps.
	assert.Equal(t, 21*32*2, m.VertexCount())
	assert.Equal(t, 20*64+2*32, m.FaceCount())

	rep := Validate(m, ValidateOptions{SkipSelfIntersection: true})
	assert.True(t, rep.IsWatertight)

	// Enclosed volume is the annulus between the tessellated circles.
	polyArea := func(r float64) float64 {
		return 0.5 * 32 * r * r * math.Sin(2*math.Pi/32)
	}
	od := 0.200
	id, err := spec.PipeInnerDiameter()
	require.NoError(t, err)
	assert.InDelta(t, (polyArea(od/2)-polyArea(id/2))*100, rep.Volume, 1e-9)
}

func TestBuildSweepCyclic(t *testing.T) {
	set, track, prof := pipeline(t, squareLoop(10), rectSpec(), 2)
	m, err := BuildSweep(set, track, prof, SweepOptions{})
	require.NoError(t, err)

	n := len(set.Samples)
	assert.Equal(t, n*4, m.VertexCount())
	// Cyclic sweeps stitch the seam segment too.
	assert.Equal(t, n*3, m.FaceCount())

	rep := Validate(m, ValidateOptions{ExpectOpenBoundary: true})
	assert.True(t, rep.IsManifold)
	// Only the two crown rims are open; no inlet or outlet rims.
	assert.Equal(t, 2*n, rep.BoundaryEdgeCount)
}

func TestBuildSweepInputErrors(t *testing.T) {
	set, track, prof := pipeline(t, straightAxis(100), rectSpec(), 5)
	var build *BuildError

	_, err := BuildSweep(nil, track, prof, SweepOptions{})
	require.ErrorAs(t, err, &build)

	short := &geom.SampleSet{Samples: set.Samples[:1], Length: set.Length}
	_, err = BuildSweep(short, track, prof, SweepOptions{})
	require.ErrorAs(t, err, &build)

	mismatched := &geom.FrameTrack{Frames: track.Frames[:len(track.Frames)-1]}
	_, err = BuildSweep(set, mismatched, prof, SweepOptions{})
	require.ErrorAs(t, err, &build)

	bad := &profile.Profile{
		Inner: prof.Inner,
		Outer: &profile.Ring{Points: prof.Inner.Points[:2]},
	}
	_, err = BuildSweep(set, track, bad, SweepOptions{})
	require.ErrorAs(t, err, &build)
}

func TestBuildSweepCancel(t *testing.T) {
	set, track, prof := pipeline(t, straightAxis(100), rectSpec(), 5)
	_, err := BuildSweep(set, track, prof, SweepOptions{
		Cancel: func() bool { return true },
	})
	var cancelled *geom.CancelledError
	require.ErrorAs(t, err, &cancelled)
}

func TestRebuildSweepInPlace(t *testing.T) {
	set, track, prof := pipeline(t, straightAxis(100), rectSpec(), 5)
	m, err := BuildSweep(set, track, prof, SweepOptions{Name: "channel"})
	require.NoError(t, err)

	// Rebuild at a finer step: same mesh object, new geometry.
	set2, track2, _ := pipeline(t, straightAxis(100), rectSpec(), 2)
	require.NoError(t, RebuildSweep(m, set2, track2, prof, SweepOptions{}))
	assert.Equal(t, "channel", m.Name)
	assert.Equal(t, 51*4, m.VertexCount())

	// A failed rebuild must leave the previous geometry untouched.
	before := m.VertexCount()
	err = RebuildSweep(m, nil, track2, prof, SweepOptions{})
	require.Error(t, err)
	assert.Equal(t, before, m.VertexCount())
}

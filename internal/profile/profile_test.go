package profile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trapSpec() SectionSpec {
	return SectionSpec{
		Type:        Trapezoidal,
		BottomWidth: 2,
		SideSlope:   1.5,
		Height:      1.5,
		Freeboard:   0.3,
	}
}

func TestTrapezoidalRing(t *testing.T) {
	prof, err := Build(trapSpec())
	require.NoError(t, err)
	require.Nil(t, prof.Outer)

	ring := prof.Inner
	require.Len(t, ring.Points, 4)
	assert.False(t, ring.Closed)
	assert.Equal(t, 3, ring.EdgeCount())

	h := 1.8
	tw := 2 + 2*1.5*h
	assert.InDelta(t, -tw/2, ring.Points[0].X, 1e-12)
	assert.InDelta(t, h, ring.Points[0].Y, 1e-12)
	assert.InDelta(t, -1.0, ring.Points[1].X, 1e-12)
	assert.InDelta(t, 0.0, ring.Points[1].Y, 1e-12)
	assert.InDelta(t, tw/2, ring.Points[3].X, 1e-12)

	assert.Equal(t, RoleCrown, ring.Roles[0])
	assert.Equal(t, RoleFloor, ring.Roles[1])
	assert.Equal(t, RoleCrown, ring.Roles[3])
}

func TestRectangularRing(t *testing.T) {
	prof, err := Build(SectionSpec{Type: Rectangular, BottomWidth: 2, Height: 1.5})
	require.NoError(t, err)

	ring := prof.Inner
	require.Len(t, ring.Points, 4)
	// Vertical walls: crown directly above floor corners.
	assert.InDelta(t, ring.Points[1].X, ring.Points[0].X, 1e-12)
	assert.InDelta(t, ring.Points[2].X, ring.Points[3].X, 1e-12)
}

func TestTriangularRingHasNoFloor(t *testing.T) {
	prof, err := Build(SectionSpec{Type: Triangular, SideSlope: 2, Height: 1})
	require.NoError(t, err)

	ring := prof.Inner
	require.Len(t, ring.Points, 3)
	assert.Equal(t, 2, ring.EdgeCount())
	assert.Equal(t, RoleApex, ring.Roles[1])
	assert.InDelta(t, 0.0, ring.Points[1].X, 1e-12)
	assert.InDelta(t, 0.0, ring.Points[1].Y, 1e-12)
}

func TestCircularRing(t *testing.T) {
	prof, err := Build(SectionSpec{Type: Circular, BottomWidth: 1.2, CircleSegments: 16})
	require.NoError(t, err)
	require.Nil(t, prof.Outer)

	ring := prof.Inner
	require.Len(t, ring.Points, 16)
	assert.True(t, ring.Closed)
	assert.Equal(t, 16, ring.EdgeCount())

	// Starts at the invert, centered on (0, r).
	assert.InDelta(t, 0.0, ring.Points[0].X, 1e-12)
	assert.InDelta(t, 0.0, ring.Points[0].Y, 1e-12)
	for _, p := range ring.Points {
		r := math.Hypot(p.X, p.Y-0.6)
		assert.InDelta(t, 0.6, r, 1e-9)
	}
}

func TestCircleSegmentsDefault(t *testing.T) {
	prof, err := Build(SectionSpec{Type: Circular, BottomWidth: 1})
	require.NoError(t, err)
	assert.Len(t, prof.Inner.Points, 32)

	// Below the floor of 8 the default kicks in too.
	prof, err = Build(SectionSpec{Type: Circular, BottomWidth: 1, CircleSegments: 4})
	require.NoError(t, err)
	assert.Len(t, prof.Inner.Points, 32)
}

func TestLiningOffset(t *testing.T) {
	spec := SectionSpec{Type: Rectangular, BottomWidth: 2, Height: 1.5, LiningThickness: 0.2}
	prof, err := Build(spec)
	require.NoError(t, err)
	require.NotNil(t, prof.Outer)
	require.Len(t, prof.Outer.Points, len(prof.Inner.Points))

	// Rectangular lining: walls move out by t, floor moves down by t.
	// The mitred floor corners move diagonally by both.
	in := prof.Inner.Points
	out := prof.Outer.Points
	assert.InDelta(t, in[0].X-0.2, out[0].X, 1e-9)
	assert.InDelta(t, in[1].X-0.2, out[1].X, 1e-9)
	assert.InDelta(t, in[1].Y-0.2, out[1].Y, 1e-9)
	assert.InDelta(t, in[2].X+0.2, out[2].X, 1e-9)
	assert.InDelta(t, in[2].Y-0.2, out[2].Y, 1e-9)
	assert.InDelta(t, in[3].X+0.2, out[3].X, 1e-9)
}

func TestPipeWallThicknessHDPE(t *testing.T) {
	spec := SectionSpec{Type: Pipe, PipeMaterial: HDPE, PipeDN: 200, PipeSDR: 17}
	wall, err := spec.PipeWallThickness()
	require.NoError(t, err)
	assert.InDelta(t, 200.0/17/1000, wall, 1e-12)

	id, err := spec.PipeInnerDiameter()
	require.NoError(t, err)
	assert.InDelta(t, 0.200-2*(200.0/17/1000), id, 1e-12)
}

func TestPipeWallThicknessPVCAndConcrete(t *testing.T) {
	pvc := SectionSpec{Type: Pipe, PipeMaterial: PVC, PipeDN: 200, PipeSchedule: Schedule40}
	wall, err := pvc.PipeWallThickness()
	require.NoError(t, err)
	assert.InDelta(t, 0.0082, wall, 1e-9)

	pvc.PipeSchedule = Schedule80
	wall, err = pvc.PipeWallThickness()
	require.NoError(t, err)
	assert.InDelta(t, 0.0127, wall, 1e-9)

	conc := SectionSpec{Type: Pipe, PipeMaterial: Concrete, PipeDN: 500}
	wall, err = conc.PipeWallThickness()
	require.NoError(t, err)
	assert.InDelta(t, 0.079, wall, 1e-9)
}

func TestPipeCatalogRejectsUnknown(t *testing.T) {
	var invalid *InvalidParametersError

	spec := SectionSpec{Type: Pipe, PipeMaterial: HDPE, PipeDN: 123, PipeSDR: 17}
	_, err := spec.PipeWallThickness()
	require.ErrorAs(t, err, &invalid)

	spec = SectionSpec{Type: Pipe, PipeMaterial: HDPE, PipeDN: 200, PipeSDR: 13}
	_, err = spec.PipeWallThickness()
	require.ErrorAs(t, err, &invalid)
}

func TestPipeProfileRings(t *testing.T) {
	spec := SectionSpec{Type: Pipe, PipeMaterial: HDPE, PipeDN: 200, PipeSDR: 17, CircleSegments: 24}
	prof, err := Build(spec)
	require.NoError(t, err)
	require.NotNil(t, prof.Outer)
	assert.Len(t, prof.Inner.Points, 24)
	assert.Len(t, prof.Outer.Points, 24)

	// Both rings share the outer-diameter center height.
	od := 0.200
	id, _ := spec.PipeInnerDiameter()
	for _, p := range prof.Outer.Points {
		assert.InDelta(t, od/2, math.Hypot(p.X, p.Y-od/2), 1e-9)
	}
	for _, p := range prof.Inner.Points {
		assert.InDelta(t, id/2, math.Hypot(p.X, p.Y-od/2), 1e-9)
	}
}

func TestValidateRejectsBadSpecs(t *testing.T) {
	var invalid *InvalidParametersError

	spec := trapSpec()
	spec.BottomWidth = 0
	require.ErrorAs(t, spec.Validate(), &invalid)

	spec = trapSpec()
	spec.Height = -1
	require.ErrorAs(t, spec.Validate(), &invalid)

	spec = trapSpec()
	spec.LiningThickness = -0.1
	require.ErrorAs(t, spec.Validate(), &invalid)

	// Inward slope crossing itself at the crown.
	spec = trapSpec()
	spec.SideSlope = 0
	require.NoError(t, spec.Validate())

	require.ErrorAs(t, SectionSpec{Type: "HEX"}.Validate(), &invalid)

	require.ErrorAs(t, SectionSpec{Type: Triangular, SideSlope: 0, Height: 1}.Validate(), &invalid)
}

package hydraulics

import (
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

func rectSpec() profile.SectionSpec {
	return profile.SectionSpec{Type: profile.Rectangular, BottomWidth: 2, Height: 1.5}
}

func TestSampleStationsWalk(t *testing.T) {
	rep, err := SampleStations(straightAxis(100), rectSpec(), StationRange{Step: 25}, SampleOptions{})
	require.NoError(t, err)

	require.Len(t, rep.Samples, 5)
	assert.InDelta(t, 100.0, rep.AxisLength, 1e-12)
	for i, want := range []float64{0, 25, 50, 75, 100} {
		assert.InDelta(t, want, rep.Samples[i].Station, 1e-9)
		assert.InDelta(t, want, rep.Samples[i].Position.X, 1e-9)
	}
}

func TestSampleStationsAlwaysIncludesEnd(t *testing.T) {
	rep, err := SampleStations(straightAxis(100), rectSpec(), StationRange{Step: 30}, SampleOptions{})
	require.NoError(t, err)
	last := rep.Samples[len(rep.Samples)-1]
	assert.InDelta(t, 100.0, last.Station, 1e-9)
}

func TestSampleStationsCyclicDropsSeam(t *testing.T) {
	rep, err := SampleStations(squareLoop(10), rectSpec(), StationRange{Step: 10}, SampleOptions{})
	require.NoError(t, err)
	// Station 40 coincides with station 0 on a loop of length 40.
	require.Len(t, rep.Samples, 4)
	for _, s := range rep.Samples {
		assert.Less(t, s.Station, rep.AxisLength)
	}
}

func TestSampleStationsDefaultDepth(t *testing.T) {
	rep, err := SampleStations(straightAxis(100), rectSpec(), StationRange{Step: 50}, SampleOptions{})
	require.NoError(t, err)
	// 75% of the design water depth.
	assert.InDelta(t, 0.75*1.5, rep.WaterDepth, 1e-12)
	assert.InDelta(t, DefaultManningN, rep.ManningN, 1e-12)

	circ := profile.SectionSpec{Type: profile.Circular, BottomWidth: 1.2}
	rep, err = SampleStations(straightAxis(100), circ, StationRange{Step: 50}, SampleOptions{})
	require.NoError(t, err)
	assert.InDelta(t, 0.75*1.2, rep.WaterDepth, 1e-12)
}

func TestSampleStationsOutline(t *testing.T) {
	rep, err := SampleStations(straightAxis(100), rectSpec(), StationRange{Step: 100}, SampleOptions{WaterDepth: 1})
	require.NoError(t, err)

	s := rep.Samples[0]
	require.Len(t, s.Outline, 4)
	// On a planar axis the section lies in the vertical plane through
	// the station, so outline X matches the station chainage.
	for _, p := range s.Outline {
		assert.InDelta(t, s.Station, p.X, 1e-9)
	}
	assert.InDelta(t, 2.0, s.Area, 1e-9)
	assert.Greater(t, s.Velocity, 0.0)
}

func TestSampleStationsLocalSlope(t *testing.T) {
	// 1% fall over 100 m: the tangent-derived slope should drive Manning.
	axis := geom.Axis{Points: []geom.Vec3{{Z: 1}, {X: 100, Z: 0}}}
	rep, err := SampleStations(axis, rectSpec(), StationRange{Step: 50}, SampleOptions{WaterDepth: 1})
	require.NoError(t, err)

	flat, err := SampleStations(straightAxis(100), rectSpec(), StationRange{Step: 50}, SampleOptions{WaterDepth: 1, Slope: 0.01})
	require.NoError(t, err)
	assert.InDelta(t, flat.Samples[0].Velocity, rep.Samples[0].Velocity, 1e-9)
}

func TestSampleStationsRangeErrors(t *testing.T) {
	var invalid *geom.InvalidAxisError
	_, err := SampleStations(straightAxis(100), rectSpec(), StationRange{Step: 0}, SampleOptions{})
	require.ErrorAs(t, err, &invalid)

	var oor *geom.OutOfRangeError
	_, err = SampleStations(straightAxis(100), rectSpec(), StationRange{Start: 150, Step: 10}, SampleOptions{})
	require.ErrorAs(t, err, &oor)

	_, err = SampleStations(straightAxis(100), rectSpec(), StationRange{End: 200, Step: 10}, SampleOptions{})
	require.ErrorAs(t, err, &oor)
}

func TestSampleStationsCancel(t *testing.T) {
	_, err := SampleStations(straightAxis(100), rectSpec(), StationRange{Step: 10}, SampleOptions{
		Cancel: func() bool { return true },
	})
	var cancelled *geom.CancelledError
	require.ErrorAs(t, err, &cancelled)
}

func TestSampleStationsProgress(t *testing.T) {
	var calls int
	var lastFrac float64
	_, err := SampleStations(straightAxis(100), rectSpec(), StationRange{Step: 25}, SampleOptions{
		Progress: func(frac float64, msg string) {
			calls++
			lastFrac = frac
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, calls)
	assert.InDelta(t, 1.0, lastFrac, 1e-12)
}

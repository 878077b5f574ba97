package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleAxisFixedStep(t *testing.T) {
	set, err := SampleAxis(straightAxis(100), Resolution{Step: 5})
	require.NoError(t, err)

	assert.Len(t, set.Samples, 21)
	assert.Equal(t, 20, set.SegmentCount())
	assert.InDelta(t, 100.0, set.Length, 1e-12)
	assert.InDelta(t, 0.0, set.Samples[0].Station, 1e-12)
	assert.InDelta(t, 100.0, set.Samples[20].Station, 1e-12)

	for i := 1; i < len(set.Samples); i++ {
		assert.Greater(t, set.Samples[i].Station, set.Samples[i-1].Station)
	}
}

func TestSampleAxisAlwaysIncludesEndpoint(t *testing.T) {
	// 100 m at 7 m steps does not divide evenly; the final point must
	// still be present.
	set, err := SampleAxis(straightAxis(100), Resolution{Step: 7})
	require.NoError(t, err)
	last := set.Samples[len(set.Samples)-1]
	assert.InDelta(t, 100.0, last.Station, 1e-9)
}

func TestSampleAxisSpacingNeverExceedsStep(t *testing.T) {
	// A length that is not a multiple of the step must round the count
	// up: 9 m at 5 m steps yields 0, 4.5, 9 rather than 0, 9.
	set, err := SampleAxis(straightAxis(9), Resolution{Step: 5})
	require.NoError(t, err)
	require.Len(t, set.Samples, 3)
	assert.InDelta(t, 4.5, set.Samples[1].Station, 1e-9)

	for _, length := range []float64{9, 42.5, 100, 101} {
		set, err := SampleAxis(straightAxis(length), Resolution{Step: 5})
		require.NoError(t, err)
		for i := 1; i < len(set.Samples); i++ {
			gap := set.Samples[i].Station - set.Samples[i-1].Station
			assert.LessOrEqual(t, gap, 5.0+1e-9, "length %.1f, samples %d..%d", length, i-1, i)
		}
	}
}

func TestSampleAxisCyclicSpacingNeverExceedsStep(t *testing.T) {
	// Perimeter 21 m at 4 m steps: 6 rings of 3.5 m, not 5 rings of 4.2.
	set, err := SampleAxis(squareLoop(5.25), Resolution{Step: 4})
	require.NoError(t, err)
	require.Len(t, set.Samples, 6)
	for i := 1; i < len(set.Samples); i++ {
		assert.LessOrEqual(t, set.Samples[i].Station-set.Samples[i-1].Station, 4.0+1e-9)
	}
	// Wrap-around segment included.
	assert.LessOrEqual(t, set.Length-set.Samples[len(set.Samples)-1].Station, 4.0+1e-9)
}

func TestSampleAxisCyclicNoSeamDuplicate(t *testing.T) {
	a := squareLoop(10) // length 40
	set, err := SampleAxis(a, Resolution{Step: 10})
	require.NoError(t, err)

	assert.True(t, set.Cyclic)
	assert.Len(t, set.Samples, 4)
	assert.Equal(t, 4, set.SegmentCount())
	// No sample at station 40 == station 0.
	for _, s := range set.Samples {
		assert.Less(t, s.Station, set.Length)
	}
}

func TestSampleAxisInvalidStep(t *testing.T) {
	_, err := SampleAxis(straightAxis(100), Resolution{Step: 0})
	var invalid *InvalidAxisError
	require.ErrorAs(t, err, &invalid)
}

func TestSampleAxisAdaptiveRefinesBends(t *testing.T) {
	// Right-angle corner: the corner interval turns 90°, far above the
	// refinement threshold.
	bent := Axis{Points: []Vec3{{}, {X: 50}, {X: 50, Y: 50}}}

	base, err := SampleAxis(bent, Resolution{Step: 25})
	require.NoError(t, err)
	refined, err := SampleAxis(bent, Resolution{Step: 25, Adaptive: true, MaxRefinement: 3})
	require.NoError(t, err)

	assert.Greater(t, len(refined.Samples), len(base.Samples))
	// Bounded: at most MaxRefinement times the base density.
	assert.LessOrEqual(t, len(refined.Samples), 3*len(base.Samples))
}

func TestSampleAxisAdaptiveKeepsStraightRunsSparse(t *testing.T) {
	set, err := SampleAxis(straightAxis(100), Resolution{Step: 5, Adaptive: true})
	require.NoError(t, err)
	assert.Len(t, set.Samples, 21)
}

func TestSampleTangentsAreUnit(t *testing.T) {
	set, err := SampleAxis(squareLoop(10), Resolution{Step: 2})
	require.NoError(t, err)
	for _, s := range set.Samples {
		assert.InDelta(t, 1.0, s.Tangent.Length(), 1e-9)
	}
}

func TestAngleBetween(t *testing.T) {
	assert.InDelta(t, 0.0, angleBetween(Vec3{X: 1}, Vec3{X: 1}), 1e-12)
	assert.InDelta(t, math.Pi/2, angleBetween(Vec3{X: 1}, Vec3{Y: 1}), 1e-12)
	assert.InDelta(t, math.Pi, angleBetween(Vec3{X: 1}, Vec3{X: -1}), 1e-9)
}

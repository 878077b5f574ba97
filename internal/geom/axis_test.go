package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func straightAxis(length float64) Axis {
	return Axis{Points: []Vec3{{}, {X: length}}}
}

func squareLoop(side float64) Axis {
	return Axis{
		Points: []Vec3{
			{},
			{X: side},
			{X: side, Y: side},
			{Y: side},
		},
		Cyclic: true,
	}
}

func TestAxisLength(t *testing.T) {
	assert.InDelta(t, 100.0, straightAxis(100).Length(), 1e-12)
	assert.InDelta(t, 40.0, squareLoop(10).Length(), 1e-12)
}

func TestAxisCleanPointsDropsDuplicates(t *testing.T) {
	a := Axis{Points: []Vec3{{}, {}, {X: 5}, {X: 5}, {X: 10}}}
	assert.InDelta(t, 10.0, a.Length(), 1e-12)
}

func TestAxisCyclicDropsDuplicatedTerminal(t *testing.T) {
	// Closed polyline with the seam point repeated: the duplicate must
	// not add a zero-length segment.
	a := Axis{
		Points: []Vec3{{}, {X: 10}, {X: 10, Y: 10}, {Y: 10}, {}},
		Cyclic: true,
	}
	assert.InDelta(t, 40.0, a.Length(), 1e-12)
}

func TestAxisTooFewPoints(t *testing.T) {
	a := Axis{Points: []Vec3{{X: 1, Y: 2, Z: 3}, {X: 1, Y: 2, Z: 3}}}
	_, _, err := a.Evaluate(0)
	var invalid *InvalidAxisError
	require.ErrorAs(t, err, &invalid)
}

func TestAxisEvaluate(t *testing.T) {
	a := straightAxis(100)

	pos, tan, err := a.Evaluate(25)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, pos.X, 1e-12)
	assert.InDelta(t, 1.0, tan.X, 1e-12)

	_, _, err = a.Evaluate(150)
	var oor *OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.InDelta(t, 100.0, oor.Length, 1e-12)
}

func TestAxisEvaluateCyclicWraps(t *testing.T) {
	a := squareLoop(10)

	pos, _, err := a.Evaluate(45)
	require.NoError(t, err)
	p5, _, err2 := a.Evaluate(5)
	require.NoError(t, err2)
	assert.InDelta(t, p5.X, pos.X, 1e-9)
	assert.InDelta(t, p5.Y, pos.Y, 1e-9)
}

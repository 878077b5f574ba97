package hydraulics

import (
	"math"

	"github.com/hydrocad/hydrocad/internal/geom"
)

// SlopeInfo summarizes the longitudinal profile of an axis. Z is the
// elevation axis.
type SlopeInfo struct {
	StartElevation float64 `json:"start_elevation_m"`
	EndElevation   float64 `json:"end_elevation_m"`
	ElevationDrop  float64 `json:"elevation_drop_m"`

	HorizontalLength float64 `json:"horizontal_length_m"`
	CurveLength      float64 `json:"curve_length_m"`

	AverageSlope        float64 `json:"average_slope"`
	AverageSlopePercent float64 `json:"average_slope_percent"`
	MinSlope            float64 `json:"min_slope"`
	MaxSlope            float64 `json:"max_slope"`
}

// minHorizontal is the horizontal run below which a segment is treated
// as vertical and excluded from per-segment slope statistics.
const minHorizontal = 1e-3

// SlopeFromAxis derives the slope profile from the axis control points.
// The average slope is drop over the straight-line horizontal distance
// between the endpoints; min and max come from the individual segments.
func SlopeFromAxis(axis geom.Axis) (SlopeInfo, error) {
	if len(axis.Points) < 2 {
		return SlopeInfo{}, &geom.InvalidAxisError{Reason: "fewer than 2 control points"}
	}

	first := axis.Points[0]
	last := axis.Points[len(axis.Points)-1]
	info := SlopeInfo{
		StartElevation: first.Z,
		EndElevation:   last.Z,
	}
	info.ElevationDrop = math.Abs(info.StartElevation - info.EndElevation)

	var slopes []float64
	for i := 1; i < len(axis.Points); i++ {
		a := axis.Points[i-1]
		b := axis.Points[i]
		dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
		horizontal := math.Hypot(dx, dy)
		info.CurveLength += math.Sqrt(dx*dx + dy*dy + dz*dz)
		if horizontal > minHorizontal {
			slopes = append(slopes, math.Abs(dz)/horizontal)
		}
	}

	info.HorizontalLength = math.Hypot(last.X-first.X, last.Y-first.Y)
	if info.HorizontalLength > minHorizontal {
		info.AverageSlope = info.ElevationDrop / info.HorizontalLength
		info.AverageSlopePercent = info.AverageSlope * 100
	}
	for i, s := range slopes {
		if i == 0 || s < info.MinSlope {
			info.MinSlope = s
		}
		if s > info.MaxSlope {
			info.MaxSlope = s
		}
	}
	return info, nil
}

// localSlope returns the longitudinal slope at one station from its
// tangent: vertical rise over horizontal run. Vertical tangents fall
// back to 0 so the caller can substitute a default.
func localSlope(tangent geom.Vec3) float64 {
	horizontal := math.Hypot(tangent.X, tangent.Y)
	if horizontal < 1e-9 {
		return 0
	}
	return math.Abs(tangent.Z) / horizontal
}

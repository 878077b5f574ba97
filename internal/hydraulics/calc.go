// Package hydraulics computes flow properties of channel and pipe
// sections: wetted area, wetted perimeter, hydraulic radius and Manning
// velocity/discharge, plus slope information derived from the axis.
package hydraulics

import (
	"math"

	"github.com/hydrocad/hydrocad/internal/profile"
)

const (
	// DefaultManningN is the roughness of a concrete lined channel.
	DefaultManningN = 0.015

	// DefaultSlope is assumed when no slope can be derived from the
	// axis (a perfectly level alignment).
	DefaultSlope = 0.001
)

// Info holds the hydraulic properties of one section at one water
// depth.
type Info struct {
	WaterDepth  float64 `json:"water_depth_m"`
	TopWidth    float64 `json:"top_width_m"`
	TotalHeight float64 `json:"total_height_m"`

	Area            float64 `json:"area_m2"`
	WettedPerimeter float64 `json:"wetted_perimeter_m"`
	HydraulicRadius float64 `json:"hydraulic_radius_m"`

	ManningN  float64 `json:"manning_n"`
	Slope     float64 `json:"slope"`
	Velocity  float64 `json:"velocity_ms"`
	Discharge float64 `json:"discharge_m3s"`
}

// Compute evaluates the closed-form hydraulic properties of the section
// at the given water depth. Slope and roughness default to DefaultSlope
// and DefaultManningN when non-positive; depth must be positive.
func Compute(spec profile.SectionSpec, waterDepth, slope, manningN float64) (Info, error) {
	if err := spec.Validate(); err != nil {
		return Info{}, err
	}
	if waterDepth <= 0 {
		return Info{}, &profile.InvalidParametersError{Reason: "water depth must be positive"}
	}
	if slope <= 0 {
		slope = DefaultSlope
	}
	if manningN <= 0 {
		manningN = DefaultManningN
	}

	info := Info{
		WaterDepth:  waterDepth,
		TotalHeight: spec.TotalHeight(),
		ManningN:    manningN,
		Slope:       slope,
	}

	switch spec.Type {
	case profile.Trapezoidal:
		d := math.Min(waterDepth, spec.TotalHeight())
		info.Area = (spec.BottomWidth + spec.SideSlope*d) * d
		info.WettedPerimeter = spec.BottomWidth + 2*d*math.Sqrt(1+spec.SideSlope*spec.SideSlope)
		info.TopWidth = spec.BottomWidth + 2*spec.SideSlope*d

	case profile.Rectangular:
		d := math.Min(waterDepth, spec.TotalHeight())
		info.Area = spec.BottomWidth * d
		info.WettedPerimeter = spec.BottomWidth + 2*d
		info.TopWidth = spec.BottomWidth

	case profile.Triangular:
		d := math.Min(waterDepth, spec.TotalHeight())
		info.Area = spec.SideSlope * d * d
		info.WettedPerimeter = 2 * d * math.Sqrt(1+spec.SideSlope*spec.SideSlope)
		info.TopWidth = 2 * spec.SideSlope * d

	case profile.Circular:
		circularFlow(&info, spec.BottomWidth, waterDepth)

	case profile.Pipe:
		id, err := spec.PipeInnerDiameter()
		if err != nil {
			return Info{}, err
		}
		circularFlow(&info, id, waterDepth)
	}

	if info.WettedPerimeter > 0 {
		info.HydraulicRadius = info.Area / info.WettedPerimeter
	}
	applyManning(&info)
	return info, nil
}

// circularFlow fills in partial or full circular flow for a bore of the
// given diameter.
func circularFlow(info *Info, diameter, waterDepth float64) {
	r := diameter / 2
	if waterDepth >= diameter {
		info.WaterDepth = diameter
		info.Area = math.Pi * r * r
		info.WettedPerimeter = math.Pi * diameter
		info.TopWidth = 0
		return
	}
	theta := 2 * math.Acos((r-waterDepth)/r)
	info.Area = r * r * (theta - math.Sin(theta)) / 2
	info.WettedPerimeter = r * theta
	info.TopWidth = 2 * math.Sqrt(waterDepth*(diameter-waterDepth))
}

// applyManning fills velocity and discharge from the Manning equation
// V = (1/n) R^(2/3) S^(1/2), Q = V·A.
func applyManning(info *Info) {
	if info.HydraulicRadius <= 0 || info.Slope <= 0 {
		return
	}
	info.Velocity = (1 / info.ManningN) * math.Pow(info.HydraulicRadius, 2.0/3.0) * math.Sqrt(info.Slope)
	info.Discharge = info.Velocity * info.Area
}

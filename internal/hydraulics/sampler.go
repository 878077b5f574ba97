package hydraulics

import (
	"fmt"
	"math"

	"github.com/hydrocad/hydrocad/internal/geom"
	"github.com/hydrocad/hydrocad/internal/profile"
)

// StationRange selects the chainages to sample: Start, Start+Step, ...
// up to End, with End itself always included. End <= 0 means the full
// axis length.
type StationRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Step  float64 `json:"step"`
}

// StationSample is one cross-section cut with its hydraulic metrics.
type StationSample struct {
	Station  float64   `json:"station_m"`
	Position geom.Vec3 `json:"position"`
	Tangent  geom.Vec3 `json:"tangent"`

	// Outline is the section polyline in world coordinates.
	Outline []geom.Vec3 `json:"outline,omitempty"`

	WaterDepth      float64 `json:"water_depth_m"`
	Area            float64 `json:"area_m2"`
	WettedPerimeter float64 `json:"wetted_perimeter_m"`
	HydraulicRadius float64 `json:"hydraulic_radius_m"`
	TopWidth        float64 `json:"top_width_m"`
	Velocity        float64 `json:"velocity_ms"`
	Discharge       float64 `json:"discharge_m3s"`
}

// StationReport collects the ordered samples of one axis.
type StationReport struct {
	AxisLength float64         `json:"axis_length_m"`
	WaterDepth float64         `json:"water_depth_m"`
	ManningN   float64         `json:"manning_n"`
	Samples    []StationSample `json:"sections"`
}

// SampleOptions tunes station sampling.
type SampleOptions struct {
	// WaterDepth <= 0 defaults to 75% of the section's design depth.
	WaterDepth float64

	// ManningN <= 0 defaults to DefaultManningN.
	ManningN float64

	// Slope overrides the per-station slope derived from the axis
	// tangent when positive.
	Slope float64

	Progress geom.ProgressFunc
	Cancel   geom.CancelFunc
}

// stationTolerance merges stations closer than this along the axis.
const stationTolerance = 1e-9

// SampleStations cuts the axis at the requested chainages and computes
// the hydraulic metrics at each cut. Stations are deduplicated at
// shared endpoints: a cyclic axis sampled over its full length does not
// emit the seam station twice.
func SampleStations(axis geom.Axis, spec profile.SectionSpec, rng StationRange, opts SampleOptions) (*StationReport, error) {
	if rng.Step <= 0 {
		return nil, &geom.InvalidAxisError{Reason: "station step must be positive"}
	}
	prof, err := profile.Build(spec)
	if err != nil {
		return nil, err
	}

	length := axis.Length()
	if length <= 0 {
		return nil, &geom.InvalidAxisError{Reason: "axis has zero length"}
	}

	end := rng.End
	if end <= 0 {
		end = length
	}
	if rng.Start < 0 || rng.Start > length {
		return nil, &geom.OutOfRangeError{Station: rng.Start, Length: length}
	}
	if end > length+stationTolerance {
		return nil, &geom.OutOfRangeError{Station: end, Length: length}
	}

	stations := listStations(rng.Start, end, rng.Step, length, axis.Cyclic)

	depth := opts.WaterDepth
	if depth <= 0 {
		depth = 0.75 * designDepth(spec)
	}

	rep := &StationReport{
		AxisLength: length,
		WaterDepth: depth,
		ManningN:   opts.ManningN,
		Samples:    make([]StationSample, 0, len(stations)),
	}
	if rep.ManningN <= 0 {
		rep.ManningN = DefaultManningN
	}

	for i, st := range stations {
		if opts.Cancel != nil && opts.Cancel() {
			return nil, &geom.CancelledError{Op: "station sampling"}
		}

		pos, frame, err := geom.FrameAt(axis, st, rng.Step)
		if err != nil {
			return nil, err
		}

		slope := opts.Slope
		if slope <= 0 {
			slope = localSlope(frame.Tangent)
		}
		info, err := Compute(spec, depth, slope, rep.ManningN)
		if err != nil {
			return nil, err
		}

		rep.Samples = append(rep.Samples, StationSample{
			Station:         st,
			Position:        pos,
			Tangent:         frame.Tangent,
			Outline:         outline(pos, frame, prof.Inner),
			WaterDepth:      info.WaterDepth,
			Area:            info.Area,
			WettedPerimeter: info.WettedPerimeter,
			HydraulicRadius: info.HydraulicRadius,
			TopWidth:        info.TopWidth,
			Velocity:        info.Velocity,
			Discharge:       info.Discharge,
		})

		if opts.Progress != nil {
			opts.Progress(float64(i+1)/float64(len(stations)), fmt.Sprintf("station %.1f m", st))
		}
	}
	return rep, nil
}

// listStations walks start, start+step, ... and appends the end station
// when the walk does not land on it. On a cyclic axis the station at
// full length coincides with station 0 and is dropped.
func listStations(start, end, step, length float64, cyclic bool) []float64 {
	var out []float64
	for st := start; st <= end+stationTolerance; st += step {
		out = append(out, math.Min(st, end))
	}
	if len(out) == 0 || out[len(out)-1] < end-stationTolerance {
		out = append(out, end)
	}
	if cyclic && len(out) > 1 {
		firstWrapped := math.Mod(out[0], length)
		lastWrapped := math.Mod(out[len(out)-1], length)
		if math.Abs(lastWrapped-firstWrapped) < stationTolerance {
			out = out[:len(out)-1]
		}
	}
	return out
}

// designDepth is the depth hydraulic defaults are measured against: the
// design water depth for open channels, the bore diameter for closed
// sections.
func designDepth(spec profile.SectionSpec) float64 {
	switch spec.Type {
	case profile.Circular:
		return spec.BottomWidth
	case profile.Pipe:
		id, err := spec.PipeInnerDiameter()
		if err != nil {
			return 0
		}
		return id
	}
	return spec.Height
}

// outline places the 2D section ring at the station's frame.
func outline(pos geom.Vec3, f geom.Frame, ring profile.Ring) []geom.Vec3 {
	out := make([]geom.Vec3, len(ring.Points))
	for i, p := range ring.Points {
		out[i] = pos.Add(f.Binormal.Scale(p.X)).Add(f.Normal.Scale(p.Y))
	}
	return out
}

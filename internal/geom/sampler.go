package geom

import (
	"math"
)

// Resolution selects the sampling policy along the axis.
type Resolution struct {
	// Step is the target spacing between samples in meters. In
	// adaptive mode it is the base spacing before refinement.
	Step float64 `json:"step_m"`

	// Adaptive enables curvature-based refinement of the base spacing.
	Adaptive bool `json:"adaptive"`

	// MaxRefinement bounds adaptive subdivision: a base interval is
	// split into at most this many sub-intervals. Values < 1 use the
	// default of 3.
	MaxRefinement int `json:"max_refinement"`
}

// adaptiveTurnThreshold is the tangent direction change (radians) over
// one base interval above which the interval is subdivided.
const adaptiveTurnThreshold = 0.1

// Sample is one discretized point of an axis.
type Sample struct {
	Station  float64 `json:"station_m"`
	Position Vec3    `json:"position"`
	Tangent  Vec3    `json:"tangent"`
}

// SampleSet is the ordered discretization of an axis. Stations are
// strictly increasing; for a cyclic axis the seam sample is not
// duplicated and the last-to-first span is an ordinary segment.
type SampleSet struct {
	Samples []Sample
	Length  float64
	Cyclic  bool
}

// SegmentCount returns the number of longitudinal segments the sample
// set spans. A cyclic set closes back on its first sample.
func (s *SampleSet) SegmentCount() int {
	if len(s.Samples) < 2 {
		return 0
	}
	if s.Cyclic {
		return len(s.Samples)
	}
	return len(s.Samples) - 1
}

// SampleAxis discretizes the axis at the given resolution.
//
// Fixed mode walks cumulative arc length in steps of Step, always
// including the final point of an open axis. Adaptive mode starts from
// the fixed stations and subdivides intervals where the tangent turns
// more than a threshold, up to MaxRefinement sub-intervals each, so
// tight bends get denser rings without inflating straight runs.
func SampleAxis(axis Axis, res Resolution) (*SampleSet, error) {
	if res.Step <= 0 {
		return nil, &InvalidAxisError{Reason: "sampling step must be positive"}
	}
	p, err := axis.polyline()
	if err != nil {
		return nil, err
	}
	total := p.length()
	if total <= 0 {
		return nil, &InvalidAxisError{Reason: "axis has zero length"}
	}

	stations := baseStations(total, res.Step, axis.Cyclic)
	if res.Adaptive {
		stations = refineStations(p, stations, res, axis.Cyclic)
	}

	set := &SampleSet{
		Samples: make([]Sample, 0, len(stations)),
		Length:  total,
		Cyclic:  axis.Cyclic,
	}
	for _, s := range stations {
		pos, tan := p.at(s)
		set.Samples = append(set.Samples, Sample{Station: s, Position: pos, Tangent: tan})
	}
	return set, nil
}

// baseStations produces evenly spaced stations. Open axes span [0, L]
// inclusive; cyclic axes span [0, L) so the seam is not sampled twice.
// The count rounds up so the actual spacing never exceeds step.
func baseStations(total, step float64, cyclic bool) []float64 {
	if cyclic {
		n := stepCount(total, step)
		if n < 3 {
			n = 3
		}
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			out[i] = float64(i) * total / float64(n)
		}
		return out
	}
	n := stepCount(total, step) + 1
	if n < 2 {
		n = 2
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = float64(i) * total / float64(n-1)
	}
	return out
}

// stepCount returns how many step-sized intervals cover total, rounding
// up. The tolerance keeps exact multiples from gaining a spurious extra
// interval to float error.
func stepCount(total, step float64) int {
	return int(math.Ceil(total/step - 1e-9))
}

// refineStations subdivides base intervals whose tangent turn exceeds
// the threshold. The subdivision count per interval is bounded by
// MaxRefinement so adaptive density is at most that multiple of the
// base density.
func refineStations(p *polyline, base []float64, res Resolution, cyclic bool) []float64 {
	maxRefine := res.MaxRefinement
	if maxRefine < 1 {
		maxRefine = 3
	}
	total := p.length()

	out := make([]float64, 0, len(base))
	intervals := len(base) - 1
	if cyclic {
		intervals = len(base)
	}
	for i := 0; i < intervals; i++ {
		s0 := base[i]
		s1 := total
		if i+1 < len(base) {
			s1 = base[i+1]
		}
		out = append(out, s0)

		_, t0 := p.at(s0)
		_, t1 := p.at(s1)
		turn := angleBetween(t0, t1)
		if turn <= adaptiveTurnThreshold {
			continue
		}
		k := int(math.Ceil(turn / adaptiveTurnThreshold))
		if k > maxRefine {
			k = maxRefine
		}
		for j := 1; j < k; j++ {
			out = append(out, s0+(s1-s0)*float64(j)/float64(k))
		}
	}
	if !cyclic {
		out = append(out, base[len(base)-1])
	}
	return out
}

func angleBetween(a, b Vec3) float64 {
	d := a.Dot(b)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d)
}

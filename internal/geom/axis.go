package geom

import "fmt"

// closureTolerance is the distance under which the first and last axis
// points are considered coincident for cyclic closure detection.
const closureTolerance = 1e-6

// Axis is the 3D alignment polyline a channel or pipe follows. It is a
// plain value copied from whatever host object defined the curve; the
// engine never writes back to it.
type Axis struct {
	Points []Vec3 `json:"points"`
	Cyclic bool   `json:"cyclic"`
}

// ProgressFunc receives cooperative progress reports during long
// operations. fraction is in [0, 1].
type ProgressFunc func(fraction float64, message string)

// CancelFunc is polled at sampling checkpoints; returning true aborts
// the operation with a CancelledError.
type CancelFunc func() bool

// OutOfRangeError indicates a requested station beyond the axis length.
type OutOfRangeError struct {
	Station float64
	Length  float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("station %.3f m out of range (axis length %.3f m)", e.Station, e.Length)
}

// cleanPoints drops consecutive duplicate control points, and for a
// cyclic axis the duplicated terminal point. Returns InvalidAxisError
// when fewer than 2 distinct points remain.
func (a Axis) cleanPoints() ([]Vec3, error) {
	pts := make([]Vec3, 0, len(a.Points))
	for _, p := range a.Points {
		if len(pts) > 0 && pts[len(pts)-1].Distance(p) < closureTolerance {
			continue
		}
		pts = append(pts, p)
	}
	if a.Cyclic && len(pts) > 1 && pts[0].Distance(pts[len(pts)-1]) < closureTolerance {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 2 {
		return nil, &InvalidAxisError{Reason: "fewer than 2 distinct points"}
	}
	if a.Cyclic && len(pts) < 3 {
		return nil, &InvalidAxisError{Reason: "cyclic axis needs at least 3 distinct points"}
	}
	return pts, nil
}

// polyline caches cumulative arc lengths over cleaned control points so
// stations can be mapped to positions and tangents.
type polyline struct {
	pts    []Vec3
	cum    []float64 // cum[i] = arc length at pts[i]; one extra entry for the wrap segment when cyclic
	cyclic bool
}

func (a Axis) polyline() (*polyline, error) {
	pts, err := a.cleanPoints()
	if err != nil {
		return nil, err
	}
	n := len(pts)
	segs := n - 1
	if a.Cyclic {
		segs = n
	}
	cum := make([]float64, segs+1)
	for i := 1; i <= segs; i++ {
		cum[i] = cum[i-1] + pts[i-1].Distance(pts[i%n])
	}
	return &polyline{pts: pts, cum: cum, cyclic: a.Cyclic}, nil
}

func (p *polyline) length() float64 {
	return p.cum[len(p.cum)-1]
}

// at returns position and tangent at arc length s. s is clamped to
// [0, length]; for a cyclic polyline it wraps.
func (p *polyline) at(s float64) (Vec3, Vec3) {
	total := p.length()
	if p.cyclic {
		s = mod(s, total)
	} else if s <= 0 {
		s = 0
	} else if s >= total {
		s = total
	}

	n := len(p.pts)
	segs := len(p.cum) - 1
	for i := 1; i <= segs; i++ {
		if p.cum[i] >= s {
			a := p.pts[i-1]
			b := p.pts[i%n]
			segLen := p.cum[i] - p.cum[i-1]
			t := 0.0
			if segLen > 0 {
				t = (s - p.cum[i-1]) / segLen
			}
			return a.Lerp(b, t), b.Sub(a).Normalized()
		}
	}
	// s == total on an open polyline.
	a := p.pts[n-2]
	b := p.pts[n-1]
	return b, b.Sub(a).Normalized()
}

// Length returns the total arc length of the axis, or 0 when the axis
// is invalid.
func (a Axis) Length() float64 {
	p, err := a.polyline()
	if err != nil {
		return 0
	}
	return p.length()
}

// Evaluate returns the position and tangent at the given station. It
// fails with OutOfRangeError when the station exceeds the axis length
// (cyclic axes wrap instead).
func (a Axis) Evaluate(station float64) (Vec3, Vec3, error) {
	p, err := a.polyline()
	if err != nil {
		return Vec3{}, Vec3{}, err
	}
	if !a.Cyclic && (station < 0 || station > p.length()+closureTolerance) {
		return Vec3{}, Vec3{}, &OutOfRangeError{Station: station, Length: p.length()}
	}
	pos, tan := p.at(station)
	return pos, tan, nil
}

func mod(s, m float64) float64 {
	if m <= 0 {
		return 0
	}
	r := s - float64(int(s/m))*m
	if r < 0 {
		r += m
	}
	return r
}

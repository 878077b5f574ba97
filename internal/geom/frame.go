package geom

import "math"

// Frame is an orthonormal moving frame at one sample: tangent along the
// axis, normal pointing "up" in the cross-section plane, binormal to
// the right.
type Frame struct {
	Tangent  Vec3
	Normal   Vec3
	Binormal Vec3
}

// FrameTrack carries one frame per sample of a SampleSet. For cyclic
// sets the residual twist found when propagating once around the loop
// is recorded in SeamMismatch (radians) after it has been distributed
// away, so callers can report how much correction was applied.
type FrameTrack struct {
	Frames       []Frame
	SeamMismatch float64
}

// PropagateFrames computes a rotation-minimizing frame at every sample
// using the double-reflection method. Unlike Frenet frames, these do
// not flip at inflection points, so cross-sections placed on them stay
// twist-free.
//
// upHint seeds the first normal; when zero, the world axis least
// aligned with the first tangent is used.
func PropagateFrames(set *SampleSet, upHint Vec3) (*FrameTrack, error) {
	n := len(set.Samples)
	if n < 2 {
		return nil, &InvalidAxisError{Reason: "need at least 2 samples to propagate frames"}
	}

	frames := make([]Frame, n)
	frames[0] = initialFrame(set.Samples[0].Tangent, upHint)

	for i := 1; i < n; i++ {
		prev := set.Samples[i-1]
		cur := set.Samples[i]
		if cur.Position.Distance(prev.Position) < closureTolerance {
			return nil, &DegenerateTangentError{Index: i, Station: cur.Station}
		}
		frames[i] = doubleReflect(frames[i-1], prev.Position, cur.Position, cur.Tangent)
	}

	track := &FrameTrack{Frames: frames}
	if set.Cyclic {
		track.reconcileLoop(set)
	}
	return track, nil
}

// initialFrame builds the first frame from a tangent and an up
// reference, picking the world axis least aligned with the tangent when
// no hint is given so the projection never degenerates.
func initialFrame(tangent, upHint Vec3) Frame {
	t := tangent.Normalized()
	up := upHint
	if up.Length() < 1e-12 {
		up = leastAlignedAxis(t)
	}
	// Project the up reference off the tangent.
	normal := up.Sub(t.Scale(t.Dot(up))).Normalized()
	if normal.Length() < 1e-12 {
		normal = leastAlignedAxis(t)
		normal = normal.Sub(t.Scale(t.Dot(normal))).Normalized()
	}
	return Frame{Tangent: t, Normal: normal, Binormal: t.Cross(normal)}
}

func leastAlignedAxis(t Vec3) Vec3 {
	axes := []Vec3{{Z: 1}, {Y: 1}, {X: 1}}
	best := axes[0]
	bestDot := math.Abs(t.Dot(best))
	for _, a := range axes[1:] {
		if d := math.Abs(t.Dot(a)); d < bestDot {
			best, bestDot = a, d
		}
	}
	return best
}

// doubleReflect advances a frame from position p0 to p1 with the
// double-reflection rotation-minimizing step: one reflection through
// the chord midplane, one through the tangent bisector plane.
func doubleReflect(f Frame, p0, p1, tangent1 Vec3) Frame {
	t1 := tangent1.Normalized()

	v1 := p1.Sub(p0)
	c1 := v1.Dot(v1)
	if c1 < 1e-18 {
		return Frame{Tangent: t1, Normal: f.Normal, Binormal: t1.Cross(f.Normal)}
	}
	// First reflection.
	rL := f.Normal.Sub(v1.Scale(2 / c1 * v1.Dot(f.Normal)))
	tL := f.Tangent.Sub(v1.Scale(2 / c1 * v1.Dot(f.Tangent)))

	// Second reflection.
	v2 := t1.Sub(tL)
	c2 := v2.Dot(v2)
	normal := rL
	if c2 >= 1e-18 {
		normal = rL.Sub(v2.Scale(2 / c2 * v2.Dot(rL)))
	}
	normal = normal.Sub(t1.Scale(t1.Dot(normal))).Normalized()
	return Frame{Tangent: t1, Normal: normal, Binormal: t1.Cross(normal)}
}

// reconcileLoop measures the angular mismatch a cyclic propagation
// accumulates between the frame carried once around the loop and
// frame 0, then distributes the correction as an equal incremental
// twist so no seam discontinuity remains.
func (ft *FrameTrack) reconcileLoop(set *SampleSet) {
	n := len(ft.Frames)
	last := set.Samples[n-1]
	first := set.Samples[0]

	// Carry the last frame across the seam segment back to sample 0.
	wrapped := doubleReflect(ft.Frames[n-1], last.Position, first.Position, first.Tangent)

	f0 := ft.Frames[0]
	mismatch := math.Atan2(wrapped.Normal.Dot(f0.Binormal), wrapped.Normal.Dot(f0.Normal))
	ft.SeamMismatch = mismatch
	if math.Abs(mismatch) < 1e-12 {
		return
	}
	for i := 1; i < n; i++ {
		twist := -mismatch * float64(i) / float64(n)
		ft.Frames[i] = ft.Frames[i].twisted(twist)
	}
}

// twisted rotates the normal/binormal pair about the tangent.
func (f Frame) twisted(angle float64) Frame {
	c := math.Cos(angle)
	s := math.Sin(angle)
	n := f.Normal.Scale(c).Add(f.Binormal.Scale(s))
	return Frame{Tangent: f.Tangent, Normal: n, Binormal: f.Tangent.Cross(n)}
}

// FrameAt evaluates a single rotation-minimizing frame at one station
// without building the full track for the whole axis: the frames are
// propagated over the samples up to the station only.
func FrameAt(axis Axis, station float64, step float64) (Vec3, Frame, error) {
	pos, _, err := axis.Evaluate(station)
	if err != nil {
		return Vec3{}, Frame{}, err
	}
	if step <= 0 {
		step = 1.0
	}
	set, err := SampleAxis(axis, Resolution{Step: step})
	if err != nil {
		return Vec3{}, Frame{}, err
	}
	track, err := PropagateFrames(set, Vec3{})
	if err != nil {
		return Vec3{}, Frame{}, err
	}
	// Propagate from the nearest preceding sample to the exact station.
	idx := 0
	for i, s := range set.Samples {
		if s.Station <= station {
			idx = i
		}
	}
	base := set.Samples[idx]
	frame := track.Frames[idx]
	if pos.Distance(base.Position) >= closureTolerance {
		_, tan, _ := axis.Evaluate(station)
		frame = doubleReflect(frame, base.Position, pos, tan)
	}
	return pos, frame, nil
}

package profile

import "math"

// Point2 is a 2D point in section-local coordinates: X to the right
// (binormal), Y up (normal), origin at the channel invert.
type Point2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Role tags the semantic meaning of a profile point.
type Role int

const (
	RoleFloor Role = iota
	RoleWallLeft
	RoleWallRight
	RoleCrown
	RoleApex
)

// Ring is one cross-section outline. Open rings are polylines (the top
// stays open), closed rings wrap around.
type Ring struct {
	Points []Point2
	Roles  []Role
	Closed bool
}

// EdgeCount returns the number of outline edges, which is also the
// number of faces one axis segment contributes per shell.
func (r Ring) EdgeCount() int {
	if len(r.Points) < 2 {
		return 0
	}
	if r.Closed {
		return len(r.Points)
	}
	return len(r.Points) - 1
}

// Profile is the full cross-section: the hydraulic (inner) ring, plus a
// structural (outer) ring when the section carries lining or a pipe
// wall. Inner and outer always share point count and correspondence so
// shells can be stitched one-to-one.
type Profile struct {
	Inner Ring
	Outer *Ring
}

// Build generates the profile rings for a section spec. It fails with
// InvalidParameters when the spec violates a geometric constraint.
func Build(spec SectionSpec) (*Profile, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	switch spec.Type {
	case Trapezoidal, Rectangular, Triangular:
		inner := openRing(spec)
		p := &Profile{Inner: inner}
		if spec.LiningThickness > 0 {
			outer := offsetOutward(inner, spec.LiningThickness)
			p.Outer = &outer
		}
		return p, nil

	case Circular:
		d := spec.BottomWidth
		return &Profile{Inner: circleRing(d/2, d/2, spec.segments())}, nil

	case Pipe:
		od := float64(spec.PipeDN) / 1000
		id, err := spec.PipeInnerDiameter()
		if err != nil {
			return nil, err
		}
		k := spec.segments()
		inner := circleRing(id/2, od/2, k)
		outer := circleRing(od/2, od/2, k)
		return &Profile{Inner: inner, Outer: &outer}, nil
	}
	return nil, &InvalidParametersError{Reason: "unknown section type"}
}

func (s SectionSpec) segments() int {
	if s.CircleSegments >= 8 {
		return s.CircleSegments
	}
	return 32
}

// openRing builds the open-channel outline ordered left crown, down the
// left wall, across the floor, up the right wall to the right crown.
// Traversal is counterclockwise so the channel interior lies to the
// left of each edge.
func openRing(spec SectionSpec) Ring {
	h := spec.TotalHeight()
	switch spec.Type {
	case Trapezoidal:
		bw := spec.BottomWidth
		tw := spec.TopWidth()
		return Ring{
			Points: []Point2{{-tw / 2, h}, {-bw / 2, 0}, {bw / 2, 0}, {tw / 2, h}},
			Roles:  []Role{RoleCrown, RoleFloor, RoleFloor, RoleCrown},
		}
	case Rectangular:
		bw := spec.BottomWidth
		return Ring{
			Points: []Point2{{-bw / 2, h}, {-bw / 2, 0}, {bw / 2, 0}, {bw / 2, h}},
			Roles:  []Role{RoleCrown, RoleFloor, RoleFloor, RoleCrown},
		}
	default: // Triangular
		half := spec.SideSlope * h
		return Ring{
			Points: []Point2{{-half, h}, {0, 0}, {half, h}},
			Roles:  []Role{RoleCrown, RoleApex, RoleCrown},
		}
	}
}

// circleRing builds a closed circle of radius r centered at (0, cy),
// starting at the bottom point and running counterclockwise.
func circleRing(r, cy float64, segments int) Ring {
	pts := make([]Point2, segments)
	roles := make([]Role, segments)
	for i := 0; i < segments; i++ {
		a := -math.Pi/2 + 2*math.Pi*float64(i)/float64(segments)
		pts[i] = Point2{X: r * math.Cos(a), Y: cy + r*math.Sin(a)}
		switch {
		case i == 0:
			roles[i] = RoleApex
		case i == segments/2:
			roles[i] = RoleCrown
		case pts[i].X < 0:
			roles[i] = RoleWallLeft
		default:
			roles[i] = RoleWallRight
		}
	}
	return Ring{Points: pts, Roles: roles, Closed: true}
}

// offsetOutward offsets an open ring away from the channel interior by
// t, with mitred interior vertices, producing the structural shell of a
// lined channel. Point count and correspondence match the input ring.
func offsetOutward(r Ring, t float64) Ring {
	n := len(r.Points)
	out := make([]Point2, n)

	normal := func(i int) Point2 {
		a := r.Points[i]
		b := r.Points[i+1]
		dx := b.X - a.X
		dy := b.Y - a.Y
		l := math.Hypot(dx, dy)
		if l < 1e-12 {
			return Point2{}
		}
		// Interior is to the left of each edge, so outward is to the right.
		return Point2{X: dy / l, Y: -dx / l}
	}

	for i := 0; i < n; i++ {
		switch {
		case i == 0:
			nrm := normal(0)
			out[i] = Point2{r.Points[i].X + nrm.X*t, r.Points[i].Y + nrm.Y*t}
		case i == n-1:
			nrm := normal(n - 2)
			out[i] = Point2{r.Points[i].X + nrm.X*t, r.Points[i].Y + nrm.Y*t}
		default:
			n1 := normal(i - 1)
			n2 := normal(i)
			p, ok := lineIntersection(
				Point2{r.Points[i-1].X + n1.X*t, r.Points[i-1].Y + n1.Y*t},
				Point2{r.Points[i].X + n1.X*t, r.Points[i].Y + n1.Y*t},
				Point2{r.Points[i].X + n2.X*t, r.Points[i].Y + n2.Y*t},
				Point2{r.Points[i+1].X + n2.X*t, r.Points[i+1].Y + n2.Y*t},
			)
			if !ok {
				// Collinear edges: plain normal offset.
				p = Point2{r.Points[i].X + n1.X*t, r.Points[i].Y + n1.Y*t}
			}
			out[i] = p
		}
	}

	roles := make([]Role, n)
	copy(roles, r.Roles)
	return Ring{Points: out, Roles: roles}
}

// lineIntersection intersects the infinite lines a1-a2 and b1-b2.
func lineIntersection(a1, a2, b1, b2 Point2) (Point2, bool) {
	d1x, d1y := a2.X-a1.X, a2.Y-a1.Y
	d2x, d2y := b2.X-b1.X, b2.Y-b1.Y
	den := d1x*d2y - d1y*d2x
	if math.Abs(den) < 1e-12 {
		return Point2{}, false
	}
	u := ((b1.X-a1.X)*d2y - (b1.Y-a1.Y)*d2x) / den
	return Point2{X: a1.X + d1x*u, Y: a1.Y + d1y*u}, true
}

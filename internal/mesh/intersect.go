package mesh

import (
	"math"

	"github.com/hydrocad/hydrocad/internal/geom"
)

const intersectEps = 1e-10

// trianglesIntersect reports whether two triangles intersect, using the
// Möller interval test with a 2D fallback for coplanar pairs. Shared
// vertices are expected to be filtered by the caller.
func trianglesIntersect(a0, a1, a2, b0, b1, b2 geom.Vec3) bool {
	// Plane of triangle B.
	n2 := b1.Sub(b0).Cross(b2.Sub(b0))
	d2 := -n2.Dot(b0)
	du0 := n2.Dot(a0) + d2
	du1 := n2.Dot(a1) + d2
	du2 := n2.Dot(a2) + d2
	du0 = snap(du0)
	du1 = snap(du1)
	du2 = snap(du2)
	if (du0 > 0 && du1 > 0 && du2 > 0) || (du0 < 0 && du1 < 0 && du2 < 0) {
		return false
	}

	// Plane of triangle A.
	n1 := a1.Sub(a0).Cross(a2.Sub(a0))
	d1 := -n1.Dot(a0)
	dv0 := snap(n1.Dot(b0) + d1)
	dv1 := snap(n1.Dot(b1) + d1)
	dv2 := snap(n1.Dot(b2) + d1)
	if (dv0 > 0 && dv1 > 0 && dv2 > 0) || (dv0 < 0 && dv1 < 0 && dv2 < 0) {
		return false
	}

	dir := n1.Cross(n2)
	if dir.Length() < intersectEps {
		return coplanarTrianglesIntersect(n1, a0, a1, a2, b0, b1, b2)
	}

	axis := dominantAxis(dir)
	pa := [3]float64{component(a0, axis), component(a1, axis), component(a2, axis)}
	pb := [3]float64{component(b0, axis), component(b1, axis), component(b2, axis)}

	ia0, ia1, ok := planeInterval(pa, [3]float64{du0, du1, du2})
	if !ok {
		return coplanarTrianglesIntersect(n1, a0, a1, a2, b0, b1, b2)
	}
	ib0, ib1, ok := planeInterval(pb, [3]float64{dv0, dv1, dv2})
	if !ok {
		return coplanarTrianglesIntersect(n1, a0, a1, a2, b0, b1, b2)
	}

	if ia0 > ia1 {
		ia0, ia1 = ia1, ia0
	}
	if ib0 > ib1 {
		ib0, ib1 = ib1, ib0
	}
	return ia1 >= ib0-intersectEps && ib1 >= ia0-intersectEps
}

func snap(v float64) float64 {
	if math.Abs(v) < intersectEps {
		return 0
	}
	return v
}

// planeInterval computes the parametric interval where the triangle
// crosses the other triangle's plane. Returns ok=false when the
// triangle lies in the plane.
func planeInterval(p, d [3]float64) (float64, float64, bool) {
	// Isolate the vertex on its own side of the plane.
	switch {
	case d[0]*d[1] > 0:
		return cross(p[2], p[0], d[2], d[0]), cross(p[2], p[1], d[2], d[1]), true
	case d[0]*d[2] > 0:
		return cross(p[1], p[0], d[1], d[0]), cross(p[1], p[2], d[1], d[2]), true
	case d[1]*d[2] > 0 || d[0] != 0:
		return cross(p[0], p[1], d[0], d[1]), cross(p[0], p[2], d[0], d[2]), true
	case d[1] != 0:
		return cross(p[1], p[0], d[1], d[0]), cross(p[1], p[2], d[1], d[2]), true
	case d[2] != 0:
		return cross(p[2], p[0], d[2], d[0]), cross(p[2], p[1], d[2], d[1]), true
	}
	return 0, 0, false
}

// cross interpolates the plane crossing between two vertices.
func cross(pa, pb, da, db float64) float64 {
	if da == db {
		return pa
	}
	return pa + (pb-pa)*da/(da-db)
}

type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

func dominantAxis(v geom.Vec3) axis {
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	if ax >= ay && ax >= az {
		return axisX
	}
	if ay >= az {
		return axisY
	}
	return axisZ
}

func component(v geom.Vec3, a axis) float64 {
	switch a {
	case axisX:
		return v.X
	case axisY:
		return v.Y
	}
	return v.Z
}

type pt2 struct{ x, y float64 }

// coplanarTrianglesIntersect projects both triangles onto the dominant
// plane of the shared normal and tests edge crossings and containment.
func coplanarTrianglesIntersect(n, a0, a1, a2, b0, b1, b2 geom.Vec3) bool {
	drop := dominantAxis(n)
	p := func(v geom.Vec3) pt2 {
		switch drop {
		case axisX:
			return pt2{v.Y, v.Z}
		case axisY:
			return pt2{v.X, v.Z}
		}
		return pt2{v.X, v.Y}
	}
	ta := [3]pt2{p(a0), p(a1), p(a2)}
	tb := [3]pt2{p(b0), p(b1), p(b2)}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if segmentsIntersect(ta[i], ta[(i+1)%3], tb[j], tb[(j+1)%3]) {
				return true
			}
		}
	}
	return pointInTriangle(ta[0], tb) || pointInTriangle(tb[0], ta)
}

func orient2(a, b, c pt2) float64 {
	return (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
}

func segmentsIntersect(p1, p2, q1, q2 pt2) bool {
	d1 := orient2(q1, q2, p1)
	d2 := orient2(q1, q2, p2)
	d3 := orient2(p1, p2, q1)
	d4 := orient2(p1, p2, q2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func pointInTriangle(p pt2, t [3]pt2) bool {
	d1 := orient2(t[0], t[1], p)
	d2 := orient2(t[1], t[2], p)
	d3 := orient2(t[2], t[0], p)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

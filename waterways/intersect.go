package waterways

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/01100100/kreuzungen/geo"
)

// Intersecting returns the candidates whose geometry crosses the route,
// preserving input order. The test is boolean: a waterway that touches the
// route anywhere counts as crossed, no matter where or how often.
func Intersecting(candidates []Waterway, route geo.Route) []Waterway {
	var out []Waterway
	for _, w := range candidates {
		if intersects(w.Geometry, route.Line) {
			out = append(out, w)
		}
	}
	return out
}

func intersects(g orb.Geometry, route orb.LineString) bool {
	routeBound := route.Bound()
	for _, line := range flatten(g) {
		if !line.Bound().Intersects(routeBound) {
			continue
		}
		for i := 0; i < len(route)-1; i++ {
			for j := 0; j < len(line)-1; j++ {
				if segmentsCross(route[i], route[i+1], line[j], line[j+1]) {
					return true
				}
			}
		}
	}
	return false
}

func flatten(g orb.Geometry) []orb.LineString {
	switch g := g.(type) {
	case orb.LineString:
		return []orb.LineString{g}
	case orb.MultiLineString:
		return g
	default:
		return nil
	}
}

// segmentsCross reports whether the closed segments p1p2 and q1q2 share any
// point, including collinear overlap and endpoint touches.
func segmentsCross(p1, p2, q1, q2 orb.Point) bool {
	d1 := orient(q1, q2, p1)
	d2 := orient(q1, q2, p2)
	d3 := orient(p1, p2, q1)
	d4 := orient(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if d1 == 0 && inBox(q1, q2, p1) {
		return true
	}
	if d2 == 0 && inBox(q1, q2, p2) {
		return true
	}
	if d3 == 0 && inBox(p1, p2, q1) {
		return true
	}
	if d4 == 0 && inBox(p1, p2, q2) {
		return true
	}
	return false
}

// segmentIntersection returns a point shared by the two segments, if any. For
// collinear overlaps an endpoint inside the overlap is returned.
func segmentIntersection(p1, p2, q1, q2 orb.Point) (orb.Point, bool) {
	rx, ry := p2[0]-p1[0], p2[1]-p1[1]
	sx, sy := q2[0]-q1[0], q2[1]-q1[1]
	denom := rx*sy - ry*sx

	if denom == 0 {
		if orient(p1, p2, q1) != 0 {
			return orb.Point{}, false
		}
		for _, pt := range []orb.Point{q1, q2} {
			if inBox(p1, p2, pt) {
				return pt, true
			}
		}
		for _, pt := range []orb.Point{p1, p2} {
			if inBox(q1, q2, pt) {
				return pt, true
			}
		}
		return orb.Point{}, false
	}

	t := ((q1[0]-p1[0])*sy - (q1[1]-p1[1])*sx) / denom
	u := ((q1[0]-p1[0])*ry - (q1[1]-p1[1])*rx) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return orb.Point{}, false
	}
	return orb.Point{p1[0] + t*rx, p1[1] + t*ry}, true
}

// orient is the signed cross product of ab x ac: positive when c lies left
// of ab, zero when collinear.
func orient(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// inBox reports whether p lies inside the bounding box of segment ab. Only
// meaningful when p is collinear with ab.
func inBox(a, b, p orb.Point) bool {
	return math.Min(a[0], b[0]) <= p[0] && p[0] <= math.Max(a[0], b[0]) &&
		math.Min(a[1], b[1]) <= p[1] && p[1] <= math.Max(a[1], b[1])
}

package waterways

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"

	"github.com/01100100/kreuzungen/geo"
)

// OrderAlongRoute locates the first crossing of each waterway along the route
// and returns the crossings sorted ascending by route distance. A waterway
// may cross the route several times; the crossing closest to the route start
// by distance travelled wins, which is not necessarily the first point the
// intersection scan finds. Candidates for which no concrete intersection
// point is computable (endpoint grazes can fall below float precision) are
// dropped.
func OrderAlongRoute(candidates []Waterway, route geo.Route) []Crossing {
	var out []Crossing
	for _, w := range candidates {
		pt, dist, ok := firstCrossing(w.Geometry, route.Line)
		if !ok {
			continue
		}
		out = append(out, Crossing{Waterway: w, Point: pt, Distance: dist})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

// firstCrossing finds the intersection point with the smallest distance along
// the route, measured as the path length from the route start to the point.
func firstCrossing(g orb.Geometry, route orb.LineString) (orb.Point, float64, bool) {
	routeBound := route.Bound()
	best := math.Inf(1)
	var bestPt orb.Point
	found := false

	cum := 0.0
	for i := 0; i < len(route)-1; i++ {
		a, b := route[i], route[i+1]
		for _, line := range flatten(g) {
			if !line.Bound().Intersects(routeBound) {
				continue
			}
			for j := 0; j < len(line)-1; j++ {
				pt, ok := segmentIntersection(a, b, line[j], line[j+1])
				if !ok {
					continue
				}
				if d := cum + orbgeo.Distance(a, pt); d < best {
					best = d
					bestPt = pt
					found = true
				}
			}
		}
		cum += orbgeo.Distance(a, b)
	}
	return bestPt, best, found
}

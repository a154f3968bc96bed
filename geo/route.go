// Package geo holds the route geometry model and the parsers that produce it
// from external encodings (encoded polylines, GPX files).
package geo

import (
	"fmt"

	"github.com/paulmach/orb"
	polyline "github.com/twpayne/go-polyline"
)

// Route is a single non-closed path in lon/lat coordinate order. Name and URL
// are display metadata carried through from the source (file name, Strava
// activity page) and may be empty.
type Route struct {
	Line orb.LineString
	Name string
	URL  string
}

// DecodePolyline parses a standard precision-5 encoded polyline into a Route.
func DecodePolyline(encoded string) (Route, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return Route{}, fmt.Errorf("decode polyline: %w", err)
	}
	if len(coords) < 2 {
		return Route{}, fmt.Errorf("polyline has %d coordinates, need at least 2", len(coords))
	}

	line := make(orb.LineString, len(coords))
	for i, c := range coords {
		// polyline order is lat,lng
		line[i] = orb.Point{c[1], c[0]}
	}
	return Route{Line: line}, nil
}

// EncodePolyline returns the precision-5 polyline encoding of the route, as
// used in shareable ?route= URLs.
func (r Route) EncodePolyline() string {
	coords := make([][]float64, len(r.Line))
	for i, p := range r.Line {
		coords[i] = []float64{p.Lat(), p.Lon()}
	}
	return string(polyline.EncodeCoords(coords))
}

// Bound returns the minimal axis-aligned bounding box enclosing the route.
func (r Route) Bound() orb.Bound {
	return r.Line.Bound()
}

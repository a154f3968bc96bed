// Package waterways implements the crossing pipeline: it merges raw OSM
// waterway fragments into logical waterways, tests them against a route,
// orders them along it, and formats the activity annotation.
package waterways

import (
	"github.com/paulmach/orb"
)

// Waterway is a logical named waterway, one per distinct name, merged from
// one or more OSM fragments.
type Waterway struct {
	ID       string
	Name     string
	Geometry orb.Geometry // orb.LineString or orb.MultiLineString

	// Props preserves each source fragment's tags, with the fragment's OSM
	// id under "id", for later detail display.
	Props []map[string]string
}

// Crossing is a waterway confirmed to cross a route. Point and Distance
// locate the first crossing along the route and are set by OrderAlongRoute.
type Crossing struct {
	Waterway
	Point    orb.Point
	Distance float64 // meters from the route start
}

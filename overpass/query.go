package overpass

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// DefaultBBoxAreaLimit is the bounding box area in square meters above which
// waterway queries drop OSM ways and fetch only relations, to bound the
// response size for long routes. Deployments tune this via configuration.
const DefaultBBoxAreaLimit = 1e10

// AreaIDOffset converts an OSM relation id into an Overpass area id.
const AreaIDOffset = 3600000000

// WaterwaysInBBox builds a query for all waterways inside a bounding box. For
// boxes larger than areaLimit square meters only relations are fetched,
// ignoring small streams mapped as bare ways.
func WaterwaysInBBox(b orb.Bound, areaLimit float64) string {
	bbox := formatBBox(b)
	if geo.Area(b) > areaLimit {
		return fmt.Sprintf(`[out:json];rel["waterway"](%s);out geom;`, bbox)
	}
	return fmt.Sprintf(`[out:json];(rel["waterway"](%s);way["waterway"](%s););out geom;`, bbox, bbox)
}

// WaterwayRelationsInBBox builds the coarse relations-only bbox query.
func WaterwayRelationsInBBox(b orb.Bound) string {
	return fmt.Sprintf(`[out:json];rel["waterway"](%s);out geom;`, formatBBox(b))
}

// WaterwayWaysInBBox builds the ways-only bbox query.
func WaterwayWaysInBBox(b orb.Bound) string {
	return fmt.Sprintf(`[out:json];way["waterway"](%s);out geom;`, formatBBox(b))
}

// WaterwaysInArea builds a query for all waterways inside a named area. The id
// is an Overpass area id, see AreaIDOffset.
func WaterwaysInArea(areaID int64) string {
	return fmt.Sprintf(`[out:json];area(%d)->.searchArea;(rel["waterway"](area.searchArea);way["waterway"](area.searchArea););out geom;`, areaID)
}

// WaterwayRelationsInArea builds the relations-only variant of WaterwaysInArea.
func WaterwayRelationsInArea(areaID int64) string {
	return fmt.Sprintf(`[out:json];area(%d)->.searchArea;rel["waterway"](area.searchArea);out geom;`, areaID)
}

// CityRelationsInBBox builds a query for the city and town boundary relations
// a route's bounding box touches. Only ids are returned; callers turn them
// into area ids with AreaIDOffset.
func CityRelationsInBBox(b orb.Bound) string {
	return fmt.Sprintf(`[out:json];rel["boundary"="administrative"]["place"~"^(city|town)$"](%s);out ids;`, formatBBox(b))
}

// formatBBox renders a bound in Overpass order: south,west,north,east.
func formatBBox(b orb.Bound) string {
	return fmt.Sprintf("%.6f,%.6f,%.6f,%.6f", b.Min.Lat(), b.Min.Lon(), b.Max.Lat(), b.Max.Lon())
}

package webhookd

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/01100100/kreuzungen/geo"
)

func decodeRouteFeature(body []byte) (geo.Route, error) {
	f, err := geojson.UnmarshalFeature(body)
	if err != nil {
		return geo.Route{}, fmt.Errorf("decode feature: %w", err)
	}
	line, ok := f.Geometry.(orb.LineString)
	if !ok {
		return geo.Route{}, fmt.Errorf("route is a %s, want LineString", f.Geometry.GeoJSONType())
	}
	if len(line) < 2 {
		return geo.Route{}, fmt.Errorf("route has %d coordinates, need at least 2", len(line))
	}

	route := geo.Route{Line: line}
	if name, ok := f.Properties["name"].(string); ok {
		route.Name = name
	}
	if url, ok := f.Properties["url"].(string); ok {
		route.URL = url
	}
	return route, nil
}

func encodeRouteFeature(route geo.Route) *geojson.Feature {
	f := geojson.NewFeature(route.Line)
	if route.Name != "" {
		f.Properties["name"] = route.Name
	}
	if route.URL != "" {
		f.Properties["url"] = route.URL
	}
	return f
}

package overpass

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Fragment is one raw waterway geometry piece as OSM models it, before any
// merging. A fragment corresponds to a single way or relation element.
type Fragment struct {
	ID       string // "way/<id>" or "relation/<id>"
	Name     string
	Geometry orb.Geometry // orb.LineString or orb.MultiLineString
	Tags     map[string]string
}

// Fragments extracts the line-shaped elements of a response as waterway
// fragments. Nodes and empty geometries are skipped.
func Fragments(resp *Response) []Fragment {
	var out []Fragment
	for _, el := range resp.Elements {
		switch el.Type {
		case "way":
			line := toLineString(el.Geometry)
			if len(line) < 2 {
				continue
			}
			out = append(out, Fragment{
				ID:       fmt.Sprintf("way/%d", el.ID),
				Name:     el.Tags["name"],
				Geometry: line,
				Tags:     el.Tags,
			})
		case "relation":
			var lines orb.MultiLineString
			for _, m := range el.Members {
				if m.Type != "way" {
					continue
				}
				line := toLineString(m.Geometry)
				if len(line) < 2 {
					continue
				}
				lines = append(lines, line)
			}
			if len(lines) == 0 {
				continue
			}
			var geom orb.Geometry = lines
			if len(lines) == 1 {
				geom = lines[0]
			}
			out = append(out, Fragment{
				ID:       fmt.Sprintf("relation/%d", el.ID),
				Name:     el.Tags["name"],
				Geometry: geom,
				Tags:     el.Tags,
			})
		}
	}
	return out
}

// AreaIDs returns the Overpass area ids of the relation elements in a
// response.
func AreaIDs(resp *Response) []int64 {
	var ids []int64
	for _, el := range resp.Elements {
		if el.Type == "relation" {
			ids = append(ids, el.ID+AreaIDOffset)
		}
	}
	return ids
}

func toLineString(coords []LatLon) orb.LineString {
	line := make(orb.LineString, len(coords))
	for i, c := range coords {
		line[i] = orb.Point{c.Lon, c.Lat}
	}
	return line
}

package waterways

import (
	"log/slog"
	"strings"

	"github.com/paulmach/orb"

	"github.com/01100100/kreuzungen/overpass"
)

// Merge groups fragments sharing the exact same name into one Waterway per
// name. Unnamed fragments are dropped: they cannot be reported to the user.
// Groups keep the order in which their name first appears in the input, and
// a group's parts keep their original order.
func Merge(fragments []overpass.Fragment) []Waterway {
	var names []string
	groups := make(map[string][]overpass.Fragment)
	for _, f := range fragments {
		if f.Name == "" {
			continue
		}
		if _, ok := groups[f.Name]; !ok {
			names = append(names, f.Name)
		}
		groups[f.Name] = append(groups[f.Name], f)
	}

	out := make([]Waterway, 0, len(names))
	for _, name := range names {
		group := groups[name]
		if len(group) == 1 {
			f := group[0]
			out = append(out, Waterway{
				ID:       f.ID,
				Name:     name,
				Geometry: f.Geometry,
				Props:    []map[string]string{fragmentProps(f)},
			})
			continue
		}

		props := make([]map[string]string, len(group))
		for i, f := range group {
			props[i] = fragmentProps(f)
		}
		out = append(out, Waterway{
			ID:       mergedID(group),
			Name:     name,
			Geometry: combine(group),
			Props:    props,
		})
	}
	return out
}

// combine flattens the group's geometries into a single MultiLineString,
// preserving each part in its original order.
func combine(group []overpass.Fragment) orb.MultiLineString {
	var parts orb.MultiLineString
	for _, f := range group {
		switch g := f.Geometry.(type) {
		case orb.LineString:
			parts = append(parts, g)
		case orb.MultiLineString:
			parts = append(parts, g...)
		default:
			// Data inconsistency. Keep going with the parts we have.
			slog.Warn("unexpected geometry in waterway group", "id", f.ID, "type", g.GeoJSONType())
		}
	}
	return parts
}

// mergedID picks a canonical id for a group: the first relation id if one
// exists, else a synthesized combined/<way-id>_<way-id>... id.
func mergedID(group []overpass.Fragment) string {
	for _, f := range group {
		if strings.HasPrefix(f.ID, "relation/") {
			return f.ID
		}
	}
	parts := make([]string, len(group))
	for i, f := range group {
		parts[i] = strings.TrimPrefix(f.ID, "way/")
	}
	return "combined/" + strings.Join(parts, "_")
}

func fragmentProps(f overpass.Fragment) map[string]string {
	props := make(map[string]string, len(f.Tags)+1)
	for k, v := range f.Tags {
		props[k] = v
	}
	props["id"] = f.ID
	return props
}

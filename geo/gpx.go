package geo

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/paulmach/orb"
)

type gpxDoc struct {
	Metadata struct {
		Name string `xml:"name"`
	} `xml:"metadata"`
	Tracks []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Name     string `xml:"name"`
	Segments []struct {
		Points []gpxPoint `xml:"trkpt"`
	} `xml:"trkseg"`
}

type gpxPoint struct {
	Lat float64 `xml:"lat,attr"`
	Lon float64 `xml:"lon,attr"`
}

// ParseGPX reads a GPX document and returns the points of the first track's
// first segment as a Route. Later tracks and segments are ignored.
func ParseGPX(r io.Reader) (Route, error) {
	var doc gpxDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return Route{}, fmt.Errorf("parse gpx: %w", err)
	}

	if len(doc.Tracks) == 0 {
		return Route{}, fmt.Errorf("gpx has no tracks")
	}
	track := doc.Tracks[0]
	if len(track.Segments) == 0 {
		return Route{}, fmt.Errorf("gpx track has no segments")
	}

	points := track.Segments[0].Points
	if len(points) < 2 {
		return Route{}, fmt.Errorf("gpx track segment has %d points, need at least 2", len(points))
	}

	line := make(orb.LineString, len(points))
	for i, p := range points {
		line[i] = orb.Point{p.Lon, p.Lat}
	}

	name := track.Name
	if name == "" {
		name = doc.Metadata.Name
	}
	return Route{Line: line, Name: name}, nil
}

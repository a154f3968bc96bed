package overpass

import (
	"encoding/json"
	"encoding/xml"
	"io"
)

type rawResponse struct {
	Generator string       `json:"generator"`
	Elements  []rawElement `json:"elements"`
}

type rawElement struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Tags map[string]string `json:"tags"`

	// node
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// way, with `out geom`
	Geometry []LatLon `json:"geometry"`

	// relation, with `out geom`
	Members []rawMember `json:"members"`
}

type rawMember struct {
	Type     string   `json:"type"`
	Ref      int64    `json:"ref"`
	Role     string   `json:"role"`
	Geometry []LatLon `json:"geometry"`
}

// ParseJSON decodes an `[out:json]` Overpass response.
func ParseJSON(v io.Reader) (*Response, error) {
	var resp rawResponse
	err := json.NewDecoder(v).Decode(&resp)
	if err != nil {
		return nil, err
	}

	response := &Response{
		Generator: resp.Generator,
		Elements:  make([]Element, 0, len(resp.Elements)),
	}

	for _, el := range resp.Elements {
		members := make([]Member, len(el.Members))
		for i, m := range el.Members {
			members[i] = Member{
				Type:     m.Type,
				Ref:      m.Ref,
				Role:     m.Role,
				Geometry: m.Geometry,
			}
		}
		response.Elements = append(response.Elements, Element{
			Type:     el.Type,
			ID:       el.ID,
			Tags:     el.Tags,
			Lat:      el.Lat,
			Lon:      el.Lon,
			Geometry: el.Geometry,
			Members:  members,
		})
	}

	return response, nil
}

type xmlResponse struct {
	Generator string        `xml:"generator,attr"`
	Nodes     []xmlNode     `xml:"node"`
	Ways      []xmlWay      `xml:"way"`
	Relations []xmlRelation `xml:"relation"`
}

type xmlNode struct {
	ID   int64    `xml:"id,attr"`
	Lat  float64  `xml:"lat,attr"`
	Lon  float64  `xml:"lon,attr"`
	Tags []xmlTag `xml:"tag"`
}

type xmlWay struct {
	ID   int64    `xml:"id,attr"`
	Nds  []xmlNd  `xml:"nd"`
	Tags []xmlTag `xml:"tag"`
}

type xmlRelation struct {
	ID      int64       `xml:"id,attr"`
	Members []xmlMember `xml:"member"`
	Tags    []xmlTag    `xml:"tag"`
}

type xmlMember struct {
	Type string  `xml:"type,attr"`
	Ref  int64   `xml:"ref,attr"`
	Role string  `xml:"role,attr"`
	Nds  []xmlNd `xml:"nd"`
}

type xmlNd struct {
	Lat float64 `xml:"lat,attr"`
	Lon float64 `xml:"lon,attr"`
}

type xmlTag struct {
	K string `xml:"k,attr"`
	V string `xml:"v,attr"`
}

// ParseXML decodes an OSM XML response. This is a legacy input path: queries
// built by this package always request JSON, but stored responses from older
// deployments are XML. Requires `out geom` style output where nd and member
// elements carry coordinates.
func ParseXML(v io.Reader) (*Response, error) {
	var resp xmlResponse
	err := xml.NewDecoder(v).Decode(&resp)
	if err != nil {
		return nil, err
	}

	response := &Response{Generator: resp.Generator}

	for _, n := range resp.Nodes {
		response.Elements = append(response.Elements, Element{
			Type: "node",
			ID:   n.ID,
			Tags: tagMap(n.Tags),
			Lat:  n.Lat,
			Lon:  n.Lon,
		})
	}
	for _, w := range resp.Ways {
		geom := make([]LatLon, len(w.Nds))
		for i, nd := range w.Nds {
			geom[i] = LatLon{Lat: nd.Lat, Lon: nd.Lon}
		}
		response.Elements = append(response.Elements, Element{
			Type:     "way",
			ID:       w.ID,
			Tags:     tagMap(w.Tags),
			Geometry: geom,
		})
	}
	for _, r := range resp.Relations {
		members := make([]Member, len(r.Members))
		for i, m := range r.Members {
			geom := make([]LatLon, len(m.Nds))
			for j, nd := range m.Nds {
				geom[j] = LatLon{Lat: nd.Lat, Lon: nd.Lon}
			}
			members[i] = Member{Type: m.Type, Ref: m.Ref, Role: m.Role, Geometry: geom}
		}
		response.Elements = append(response.Elements, Element{
			Type:    "relation",
			ID:      r.ID,
			Tags:    tagMap(r.Tags),
			Members: members,
		})
	}

	return response, nil
}

func tagMap(tags []xmlTag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[t.K] = t.V
	}
	return m
}

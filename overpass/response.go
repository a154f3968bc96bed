package overpass

// Response is a parsed Overpass API response.
type Response struct {
	Generator string
	Elements  []Element
}

// Element is a single node, way or relation. Queries issued with `out geom`
// carry way geometry inline and relation geometry on the members, so no node
// joining is needed.
type Element struct {
	Type string
	ID   int64
	Tags map[string]string

	// node
	Lat float64
	Lon float64

	// way
	Geometry []LatLon

	// relation
	Members []Member
}

// Member is one member of a relation.
type Member struct {
	Type     string
	Ref      int64
	Role     string
	Geometry []LatLon
}

// LatLon is a bare coordinate pair as Overpass returns them.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

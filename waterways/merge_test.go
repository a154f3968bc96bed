package waterways

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01100100/kreuzungen/overpass"
)

func line(points ...orb.Point) orb.LineString {
	return orb.LineString(points)
}

func TestMergeGroupsByName(t *testing.T) {
	fragments := []overpass.Fragment{
		{ID: "way/10", Name: "Thames", Geometry: line(orb.Point{0, 0}, orb.Point{1, 1})},
		{ID: "way/20", Name: "Thames", Geometry: line(orb.Point{1, 1}, orb.Point{2, 2})},
	}

	merged := Merge(fragments)
	require.Len(t, merged, 1)

	thames := merged[0]
	assert.Equal(t, "Thames", thames.Name)
	lines, ok := thames.Geometry.(orb.MultiLineString)
	require.True(t, ok)
	assert.Len(t, lines, 2)
}

func TestMergeSynthesizesCombinedID(t *testing.T) {
	fragments := []overpass.Fragment{
		{ID: "way/10", Name: "Canal A", Geometry: line(orb.Point{0, 0}, orb.Point{1, 1})},
		{ID: "way/20", Name: "Canal A", Geometry: line(orb.Point{1, 1}, orb.Point{2, 2})},
	}

	merged := Merge(fragments)
	require.Len(t, merged, 1)
	assert.Equal(t, "combined/10_20", merged[0].ID)
}

func TestMergePrefersRelationID(t *testing.T) {
	fragments := []overpass.Fragment{
		{ID: "way/10", Name: "Spree", Geometry: line(orb.Point{0, 0}, orb.Point{1, 1})},
		{ID: "relation/42", Name: "Spree", Geometry: line(orb.Point{1, 1}, orb.Point{2, 2})},
		{ID: "way/20", Name: "Spree", Geometry: line(orb.Point{2, 2}, orb.Point{3, 3})},
	}

	merged := Merge(fragments)
	require.Len(t, merged, 1)
	assert.Equal(t, "relation/42", merged[0].ID)
}

func TestMergeDropsUnnamedFragments(t *testing.T) {
	fragments := []overpass.Fragment{
		{ID: "way/10", Geometry: line(orb.Point{0, 0}, orb.Point{1, 1})},
		{ID: "way/20", Name: "Spree", Geometry: line(orb.Point{1, 1}, orb.Point{2, 2})},
		{ID: "way/30", Geometry: line(orb.Point{3, 3}, orb.Point{4, 4})},
	}

	merged := Merge(fragments)
	require.Len(t, merged, 1)
	assert.Equal(t, "Spree", merged[0].Name)
}

func TestMergeSingleFragmentPassesThrough(t *testing.T) {
	geom := line(orb.Point{0, 0}, orb.Point{1, 1})
	fragments := []overpass.Fragment{
		{ID: "way/10", Name: "Spree", Geometry: geom, Tags: map[string]string{"name": "Spree", "waterway": "river"}},
	}

	merged := Merge(fragments)
	require.Len(t, merged, 1)
	assert.Equal(t, "way/10", merged[0].ID)
	assert.Equal(t, orb.Geometry(geom), merged[0].Geometry)
	require.Len(t, merged[0].Props, 1)
	assert.Equal(t, "river", merged[0].Props[0]["waterway"])
	assert.Equal(t, "way/10", merged[0].Props[0]["id"])
}

func TestMergeCollectsProperties(t *testing.T) {
	fragments := []overpass.Fragment{
		{ID: "way/10", Name: "Spree", Geometry: line(orb.Point{0, 0}, orb.Point{1, 1}),
			Tags: map[string]string{"name": "Spree", "destination": "Havel"}},
		{ID: "way/20", Name: "Spree", Geometry: line(orb.Point{1, 1}, orb.Point{2, 2}),
			Tags: map[string]string{"name": "Spree", "wikipedia": "de:Spree"}},
	}

	merged := Merge(fragments)
	require.Len(t, merged, 1)
	require.Len(t, merged[0].Props, 2)
	assert.Equal(t, "Havel", merged[0].Props[0]["destination"])
	assert.Equal(t, "de:Spree", merged[0].Props[1]["wikipedia"])
	assert.Equal(t, "way/20", merged[0].Props[1]["id"])
}

func TestMergeFlattensMultiLineStrings(t *testing.T) {
	fragments := []overpass.Fragment{
		{ID: "relation/42", Name: "Spree", Geometry: orb.MultiLineString{
			line(orb.Point{0, 0}, orb.Point{1, 1}),
			line(orb.Point{1, 1}, orb.Point{2, 2}),
		}},
		{ID: "way/10", Name: "Spree", Geometry: line(orb.Point{2, 2}, orb.Point{3, 3})},
	}

	merged := Merge(fragments)
	require.Len(t, merged, 1)
	lines, ok := merged[0].Geometry.(orb.MultiLineString)
	require.True(t, ok)
	assert.Len(t, lines, 3)
}

func TestMergeKeepsFirstSeenOrder(t *testing.T) {
	fragments := []overpass.Fragment{
		{ID: "way/1", Name: "C", Geometry: line(orb.Point{0, 0}, orb.Point{1, 1})},
		{ID: "way/2", Name: "A", Geometry: line(orb.Point{0, 0}, orb.Point{1, 1})},
		{ID: "way/3", Name: "C", Geometry: line(orb.Point{1, 1}, orb.Point{2, 2})},
		{ID: "way/4", Name: "B", Geometry: line(orb.Point{0, 0}, orb.Point{1, 1})},
	}

	merged := Merge(fragments)
	require.Len(t, merged, 3)
	assert.Equal(t, "C", merged[0].Name)
	assert.Equal(t, "A", merged[1].Name)
	assert.Equal(t, "B", merged[2].Name)
}

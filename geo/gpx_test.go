package geo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test">
  <metadata><name>Morning ride</name></metadata>
  <trk>
    <name>Spree loop</name>
    <trkseg>
      <trkpt lat="52.5163" lon="13.3777"><ele>34.0</ele></trkpt>
      <trkpt lat="52.5186" lon="13.3903"></trkpt>
      <trkpt lat="52.5200" lon="13.4050"></trkpt>
    </trkseg>
    <trkseg>
      <trkpt lat="52.53" lon="13.41"></trkpt>
      <trkpt lat="52.54" lon="13.42"></trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestParseGPX(t *testing.T) {
	route, err := ParseGPX(strings.NewReader(sampleGPX))
	require.NoError(t, err)

	assert.Equal(t, "Spree loop", route.Name)
	// only the first segment of the first track
	require.Len(t, route.Line, 3)
	assert.InDelta(t, 13.3777, route.Line[0].Lon(), 1e-9)
	assert.InDelta(t, 52.5163, route.Line[0].Lat(), 1e-9)
}

func TestParseGPXFallsBackToMetadataName(t *testing.T) {
	gpx := `<gpx><metadata><name>from metadata</name></metadata><trk><trkseg>
	  <trkpt lat="1" lon="2"/><trkpt lat="3" lon="4"/>
	</trkseg></trk></gpx>`

	route, err := ParseGPX(strings.NewReader(gpx))
	require.NoError(t, err)
	assert.Equal(t, "from metadata", route.Name)
}

func TestParseGPXErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"not xml":        "nope",
		"no tracks":      `<gpx></gpx>`,
		"no segments":    `<gpx><trk></trk></gpx>`,
		"a single point": `<gpx><trk><trkseg><trkpt lat="1" lon="2"/></trkseg></trk></gpx>`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseGPX(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

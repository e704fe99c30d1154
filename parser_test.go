package osm2noise

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser(t *testing.T) {
	parser := NewParser(
		"./testdata/buildings.osm",
		WithParserVerbose(false),
		WithGroundElevation(0),
	)

	t.Log(parser)

	buildings, projection, err := parser.ReadBuildings()
	require.NoError(t, err)
	require.NotNil(t, projection)
	// Roof-only construction and highway must be skipped
	require.Len(t, buildings, 2)

	assert.Equal(t, SurfaceID("way/100"), buildings[0].ID)
	assert.InDelta(t, 0.0, buildings[0].Base, 1e-9)
	assert.InDelta(t, 12.0, buildings[0].Top, 1e-9)
	bound := buildings[0].Footprint.Bound()
	// 0.0003 degrees of longitude and 0.0002 degrees of latitude at 55.75N
	assert.InDelta(t, 18.8, bound.Max.X()-bound.Min.X(), 0.5)
	assert.InDelta(t, 22.2, bound.Max.Y()-bound.Min.Y(), 0.5)

	assert.Equal(t, SurfaceID("way/101"), buildings[1].ID)
	assert.InDelta(t, 3.0, buildings[1].Base, 1e-9)
	assert.InDelta(t, 15.0, buildings[1].Top, 1e-9)

	scene, err := NewScene(FlatTerrain(0), buildings...)
	require.NoError(t, err)
	assert.Len(t, scene.Buildings(), 2)
}

func TestParserUnknownExtension(t *testing.T) {
	_, _, err := NewParser("./testdata/buildings.txt").ReadBuildings()
	assert.Error(t, err)
}

func TestParseHeight(t *testing.T) {
	cases := []struct {
		value    string
		expected float64
	}{
		{"12", 12},
		{"12.5", 12.5},
		{"12 m", 12},
		{"7m", 7},
		{"10 ft", 3.048},
		{"", -1},
		{"tall", -1},
	}
	for _, c := range cases {
		height := parseHeight(c.value, osm.WayID(1), "height", false)
		if Round(height, 0.001) != Round(c.expected, 0.001) {
			t.Errorf("Height of '%s' must be %f, but got %f", c.value, c.expected, height)
		}
	}
}

func TestLevelsRange(t *testing.T) {
	way := &WayData{height: -1, minHeight: -1, levels: -1, minLevel: -1}
	base, top := way.levelsRange()
	assert.Equal(t, 0.0, base)
	assert.Equal(t, defaultBuildingHeight, top)

	way = &WayData{height: -1, minHeight: -1, levels: 4, minLevel: 1}
	base, top = way.levelsRange()
	assert.Equal(t, 3.0, base)
	assert.Equal(t, 12.0, top)

	// Broken data: roof below floor
	way = &WayData{height: 2, minHeight: 5, levels: -1, minLevel: -1}
	base, top = way.levelsRange()
	assert.Equal(t, 5.0, base)
	assert.Equal(t, 5.0+levelHeight, top)
}

func TestParserRadius(t *testing.T) {
	parser := NewParser(
		"./testdata/buildings.osm",
		WithOrigin(GeoPoint{Lat: 55.75, Lon: 37.6}),
		WithRadius(0.03),
	)
	buildings, projection, err := parser.ReadBuildings()
	require.NoError(t, err)
	require.Len(t, buildings, 1)
	assert.Equal(t, SurfaceID("way/100"), buildings[0].ID)
	// Fixed origin is the first corner of the building
	assert.InDelta(t, 0.0, buildings[0].Footprint[0].X(), 1e-6)
	assert.InDelta(t, 0.0, buildings[0].Footprint[0].Y(), 1e-6)
	assert.Equal(t, GeoPoint{Lat: 55.75, Lon: 37.6}, projection.Origin)
}

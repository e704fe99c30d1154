package osm2noise

import (
	"bytes"
	"encoding/json"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulationRun(t *testing.T) {
	scene, err := NewScene(FlatTerrain(0), Box("facade", -50, 10, 60, 12, 0, 20))
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	sim := NewSimulation(scene, nil,
		NoiseEmitter{Name: "car", Position: Vec3{0, 0, 1}, Source: NewVehicle(VEHICLE_LIGHT, 50)},
		NoiseEmitter{Name: "far", Position: Vec3{5000, 0, 1}, Source: NewVehicle(VEHICLE_HEAVY, 50)},
	)
	sim.Verbose = true
	sim.Logger = log.New(buf, "", 0)

	results := sim.Run(Vec3{20, 0, 1})
	require.Len(t, results, 2)
	assert.Equal(t, "car", results[0].Name)
	assert.Len(t, results[0].Images, 2)
	assert.Len(t, Paths(results[0].Tree), 2)
	// Out of distance budget
	assert.Empty(t, results[1].Images)
	assert.True(t, math.IsInf(results[1].AWeighted(), -1))
	assert.Contains(t, buf.String(), "Source 'car'")

	total := sim.LevelAt(Vec3{20, 0, 1})
	assert.InDelta(t, results[0].AWeighted(), total, 1e-9)
	assert.False(t, math.IsInf(total, 0))
}

func TestSimulationFreshTrees(t *testing.T) {
	scene, err := NewScene(FlatTerrain(0))
	require.NoError(t, err)
	sim := NewSimulation(scene, DefaultConfiguration(), NoiseEmitter{Name: "a", Position: Vec3{0, 0, 1}, Source: ConstantEmission{BAND_1000: 90}})
	first := sim.Run(Vec3{30, 0, 1})
	second := sim.Run(Vec3{60, 0, 1})
	assert.NotSame(t, first[0].Tree, second[0].Tree)
	assert.Greater(t, first[0].AWeighted(), second[0].AWeighted())
}

func TestRasterGrid(t *testing.T) {
	pts := rasterGrid(Vec3{0, 0, 0}, 10, 5)
	assert.Len(t, pts, 25)
	assert.Equal(t, Vec3{-10, -10, 0}, pts[0])
	assert.Equal(t, Vec3{10, 10, 0}, pts[len(pts)-1])
	assert.Nil(t, rasterGrid(Vec3{}, 10, 0))
}

func TestSimulationRaster(t *testing.T) {
	extent := orb.Bound{Min: orb.Point{-100, -100}, Max: orb.Point{100, 5}}
	scene, err := NewScene(&PlaneTerrain{Z0: 0, Extent: &extent})
	require.NoError(t, err)
	cfg := DefaultConfiguration()
	cfg.RasterRadius = 10
	cfg.GridSize = 10
	sim := NewSimulation(scene, cfg, NoiseEmitter{Name: "a", Position: Vec3{-50, 0, 1}, Source: ConstantEmission{BAND_1000: 90}})

	cells := sim.Raster(Vec3{0, 0, 1})
	// Row y = 10 is outside of terrain
	require.Len(t, cells, 6)
	for _, cell := range cells {
		assert.InDelta(t, cfg.RasterHeight, cell.Point[2], 1e-9)
		assert.False(t, math.IsInf(cell.Level, 0))
		assert.Equal(t, Classify(cell.Level), cell.Class)
	}
}

func TestPathGraph(t *testing.T) {
	scene, err := NewScene(FlatTerrain(0), Box("facade", -50, 10, 60, 12, 0, 20))
	require.NoError(t, err)
	tree := NewPathTreeBuilder(scene, DefaultConfiguration()).Build(Vec3{0, 0, 1}, Vec3{20, 0, 1})

	graph, err := NewPathGraph(tree)
	require.NoError(t, err)
	cost, chain := graph.ShortestPath()
	assert.InDelta(t, 20.0, cost, 1e-9)
	require.Len(t, chain, 2)
	assert.Equal(t, tree.Root(), chain[0])
	assert.Equal(t, HIT_DIRECT, tree.Value(chain[1]).Type)
	assert.Equal(t, "LINESTRING(0 0,20 0)", PrepareWKTLinestring(tree, chain))
}

func TestGeoJSONExport(t *testing.T) {
	scene, err := NewScene(FlatTerrain(0))
	require.NoError(t, err)
	sim := NewSimulation(scene, nil, NoiseEmitter{Name: "a", Position: Vec3{0, 0, 1}, Source: ConstantEmission{BAND_1000: 90}})
	results := sim.Run(Vec3{30, 0, 1})

	fc := NewGeoJSONExporter(nil).FeatureCollection(results)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "direct", fc.Features[0].Properties["hit_type"])
	assert.Equal(t, "a", fc.Features[1].Properties["source"])
	assert.Contains(t, fc.Features[1].Properties, "L1000")

	b, err := fc.MarshalJSON()
	require.NoError(t, err)
	decoded := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "FeatureCollection", decoded["type"])

	// Back-projection into geographic coordinates
	proj := NewLocalProjection(GeoPoint{Lon: 37.6, Lat: 55.75})
	fc = NewGeoJSONExporter(proj).FeatureCollection(results)
	coords := fc.Features[0].Geometry.LineString[0]
	assert.InDelta(t, 37.6, coords[0], 1e-9)
	assert.InDelta(t, 55.75, coords[1], 1e-9)
	assert.InDelta(t, 1.0, coords[2], 1e-9)
}

func TestWKTExport(t *testing.T) {
	assert.Equal(t, "POINT(1 2)", PrepareWKTPoint(Vec3{1, 2, 3}))
	profile := PrepareWKTProfile([]PropagationStep{{Distance: 0, GroundLevel: 0, Height: 1}, {Distance: 1, GroundLevel: 0.5, Height: 1}})
	assert.True(t, strings.HasPrefix(profile, "LINESTRING"))
	assert.Contains(t, profile, "1 1.5")
}

func TestPathGraphUnreachable(t *testing.T) {
	scene, err := NewScene(FlatTerrain(0))
	require.NoError(t, err)
	tree := NewPathTreeBuilder(scene, DefaultConfiguration()).Build(Vec3{0, 0, 1}, Vec3{5000, 0, 1})
	graph, err := NewPathGraph(tree)
	require.NoError(t, err)
	cost, chain := graph.ShortestPath()
	assert.Equal(t, -1.0, cost)
	assert.Empty(t, chain)
}

func TestGeoJSONRasterFeatures(t *testing.T) {
	cells := []RasterCell{
		{Point: Vec3{0, 0, 2}, Level: 70, Class: Classify(70)},
		{Point: Vec3{5, 0, 2}, Level: math.Inf(-1), Class: NOISE_NO_DATA},
	}
	features := NewGeoJSONExporter(nil).RasterFeatures(cells)
	require.Len(t, features, 2)
	assert.Equal(t, []float64{5, 0, 2}, features[1].Geometry.Point)
	assert.Equal(t, 70.0, features[0].Properties["LA"])
	assert.Equal(t, NOISE_MODERATE.String(), features[0].Properties["class"])
	assert.Equal(t, NOISE_NO_DATA.String(), features[1].Properties["class"])
	assert.Empty(t, NewGeoJSONExporter(nil).RasterFeatures(nil))
}

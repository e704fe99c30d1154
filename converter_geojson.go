package osm2noise

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
)

// GeoJSONExporter converts propagation results into GeoJSON features.
// When projection is nil local coordinates (meters) are written as is
type GeoJSONExporter struct {
	projection *LocalProjection
}

// NewGeoJSONExporter returns exporter which back-projects local coordinates with given projection (could be nil)
func NewGeoJSONExporter(projection *LocalProjection) *GeoJSONExporter {
	return &GeoJSONExporter{
		projection: projection,
	}
}

func (exporter *GeoJSONExporter) coordinates(pt Vec3) []float64 {
	if exporter.projection == nil {
		return []float64{pt[0], pt[1], pt[2]}
	}
	geo := exporter.projection.Inverse(orb.Point{pt[0], pt[1]})
	return []float64{geo.Lon, geo.Lat, pt[2]}
}

// TreeFeatures returns a LineString for every segment of propagation tree.
// Segment is tagged by type of its end node
func (exporter *GeoJSONExporter) TreeFeatures(sourceName string, tree *PathTree) []*geojson.Feature {
	features := []*geojson.Feature{}
	tree.Traverse(func(id NodeID, node PropagationNode) {
		parent, ok := tree.Parent(id)
		if !ok {
			return
		}
		start := tree.Value(parent)
		feature := geojson.NewLineStringFeature([][]float64{
			exporter.coordinates(start.Origin),
			exporter.coordinates(node.Origin),
		})
		feature.SetProperty("source", sourceName)
		feature.SetProperty("node_id", int(id))
		feature.SetProperty("hit_type", node.Type.String())
		if node.Surface != "" {
			feature.SetProperty("surface", string(node.Surface))
		}
		features = append(features, feature)
	})
	return features
}

// ImageFeatures returns a Point for every image source
func (exporter *GeoJSONExporter) ImageFeatures(sourceName string, images []*ImageSource) []*geojson.Feature {
	features := make([]*geojson.Feature, 0, len(images))
	for _, image := range images {
		feature := geojson.NewPointFeature(exporter.coordinates(image.Position))
		feature.SetProperty("source", sourceName)
		for _, band := range Emission(image.SoundLevel).SortedBands() {
			feature.SetProperty(fmt.Sprintf("L%d", int(band)), image.SoundLevel[band])
		}
		level := image.AWeighted()
		feature.SetProperty("LA", level)
		feature.SetProperty("class", Classify(level).String())
		features = append(features, feature)
	}
	return features
}

// RasterFeatures returns a Point for every raster cell
func (exporter *GeoJSONExporter) RasterFeatures(cells []RasterCell) []*geojson.Feature {
	features := make([]*geojson.Feature, 0, len(cells))
	for _, cell := range cells {
		feature := geojson.NewPointFeature(exporter.coordinates(cell.Point))
		feature.SetProperty("LA", cell.Level)
		feature.SetProperty("class", cell.Class.String())
		features = append(features, feature)
	}
	return features
}

// FeatureCollection gathers trees and image sources of every simulated emitter
func (exporter *GeoJSONExporter) FeatureCollection(results []SourceResult) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, result := range results {
		for _, feature := range exporter.TreeFeatures(result.Name, result.Tree) {
			fc.AddFeature(feature)
		}
		for _, feature := range exporter.ImageFeatures(result.Name, result.Images) {
			fc.AddFeature(feature)
		}
	}
	return fc
}

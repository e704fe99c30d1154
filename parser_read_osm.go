package osm2noise

import (
	"fmt"

	"github.com/pkg/errors"
)

// ReadBuildings loads building outlines and projects them onto local metric plane.
// Projection is returned too, so results could be converted back to geographic coordinates
func (parser *Parser) ReadBuildings() ([]Building, *LocalProjection, error) {
	dataOSM, err := readOSM(parser.filename, parser.verbose)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't parse OSM data")
	}
	var origin GeoPoint
	if parser.origin != nil {
		origin = *parser.origin
	} else {
		centroid, ok := dataOSM.centroid()
		if !ok {
			return nil, nil, errors.Errorf("No buildings in file '%s'", parser.filename)
		}
		origin = centroid
	}
	projection := NewLocalProjection(origin)

	buildings := make([]Building, 0, len(dataOSM.ways))
	skipped, distant := 0, 0
	for _, way := range dataOSM.ways {
		outline, ok := dataOSM.wayGeometry(way)
		if !ok {
			skipped++
			continue
		}
		if parser.radius > 0 && greatCircleDistance(origin, findCentroid(outline)) > parser.radius {
			distant++
			continue
		}
		base, top := way.levelsRange()
		buildings = append(buildings, Building{
			ID:        SurfaceID(fmt.Sprintf("way/%d", way.ID)),
			Footprint: projection.ForwardRing(outline),
			Base:      parser.groundElevation + base,
			Top:       parser.groundElevation + top,
		})
	}
	if parser.verbose {
		fmt.Printf("Buildings loaded: %d (skipped because of missing nodes: %d, out of radius: %d)\n", len(buildings), skipped, distant)
	}
	return buildings, projection, nil
}

package osm2noise

import (
	"math"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

const (
	TerrainSurface = SurfaceID("terrain")
)

// Building is an extruded footprint: a prism with vertical walls, flat roof and flat floor
type Building struct {
	ID        SurfaceID
	Footprint orb.Ring // Euclidean coordinates (meters)
	Base      float64  // Elevation of the floor
	Top       float64  // Elevation of the roof
}

// Scene is a reference implementation of GeometryQuery: set of buildings standing on terrain
type Scene struct {
	terrain   Terrain
	buildings []Building
	bounds    []orb.Bound
	ccw       []bool
}

// NewScene returns scene with given terrain (could be nil) and buildings
func NewScene(terrain Terrain, buildings ...Building) (*Scene, error) {
	scene := &Scene{
		terrain: terrain,
	}
	for i := range buildings {
		if _, err := scene.AddBuilding(buildings[i]); err != nil {
			return nil, errors.Wrapf(err, "Can't add building #%d", i)
		}
	}
	return scene, nil
}

// AddBuilding registers new building. Building without identifier gets random one
func (scene *Scene) AddBuilding(building Building) (SurfaceID, error) {
	ring := openRing(building.Footprint)
	if len(ring) < 3 {
		return "", errors.New("Footprint should contain at least 3 distinct points")
	}
	if building.Top <= building.Base {
		return "", errors.Errorf("Roof (%f) should be above floor (%f)", building.Top, building.Base)
	}
	if building.ID == "" {
		building.ID = SurfaceID(uuid.New().String())
	}
	building.Footprint = ring
	scene.buildings = append(scene.buildings, building)
	scene.bounds = append(scene.bounds, ring.Bound())
	scene.ccw = append(scene.ccw, signedArea(ring) > 0)
	return building.ID, nil
}

// Buildings returns registered buildings
func (scene *Scene) Buildings() []Building {
	return scene.buildings
}

// LineOfSight implements GeometryQuery. Only front faces are able to block the segment
func (scene *Scene) LineOfSight(from, to Vec3, mask LayerMask) (Hit, bool) {
	bestT := math.Inf(1)
	var best Hit
	if mask.Has(LayerBuildings) {
		segmentBound := orb.Bound{Min: orb.Point{from[0], from[1]}, Max: orb.Point{from[0], from[1]}}.Extend(orb.Point{to[0], to[1]})
		for i := range scene.buildings {
			if !scene.bounds[i].Intersects(segmentBound) {
				continue
			}
			t, normal, ok := scene.crossBuilding(i, from, to)
			if ok && t < bestT {
				bestT = t
				best = Hit{Normal: normal, Surface: scene.buildings[i].ID}
			}
		}
	}
	if mask.Has(LayerTerrain) && scene.terrain != nil {
		if t, ok := scene.terrain.Crossing(from, to); ok && t < bestT {
			bestT = t
			point := from.Add(to.Sub(from).Mul(t))
			best = Hit{Normal: scene.terrain.Normal(point[0], point[1]), Surface: TerrainSurface}
		}
	}
	if math.IsInf(bestT, 1) {
		return Hit{}, false
	}
	best.Point = from.Add(to.Sub(from).Mul(bestT))
	best.Distance = bestT * distance(from, to)
	return best, true
}

// RaycastDown implements GeometryQuery
func (scene *Scene) RaycastDown(from Vec3, maxDistance float64, mask LayerMask) (Hit, bool) {
	found := false
	var best Hit
	if mask.Has(LayerTerrain) && scene.terrain != nil {
		if elevation, ok := scene.terrain.Elevation(from[0], from[1]); ok {
			height := from[2] - elevation
			if height >= 0 && height <= maxDistance {
				found = true
				best = Hit{
					Point:    Vec3{from[0], from[1], elevation},
					Normal:   scene.terrain.Normal(from[0], from[1]),
					Surface:  TerrainSurface,
					Distance: height,
				}
			}
		}
	}
	if mask.Has(LayerBuildings) {
		pt := orb.Point{from[0], from[1]}
		for i, building := range scene.buildings {
			height := from[2] - building.Top
			if height < 0 || height > maxDistance || (found && height >= best.Distance) {
				continue
			}
			if !scene.bounds[i].Contains(pt) || !planar.RingContains(building.Footprint, pt) {
				continue
			}
			found = true
			best = Hit{
				Point:    Vec3{from[0], from[1], building.Top},
				Normal:   worldUp,
				Surface:  building.ID,
				Distance: height,
			}
		}
	}
	return best, found
}

// crossBuilding returns parameter (0..1) of the first entrance of segment into i-th building
func (scene *Scene) crossBuilding(i int, from, to Vec3) (float64, Vec3, bool) {
	building := scene.buildings[i]
	d := to.Sub(from)
	bestT := math.Inf(1)
	var normal Vec3

	// Walls
	ring := building.Footprint
	for k := range ring {
		q1 := ring[k]
		q2 := ring[(k+1)%len(ring)]
		ex, ey := q2.X()-q1.X(), q2.Y()-q1.Y()
		// Outward normal is on the right side of the edge for counter-clockwise rings
		wallNormal := Vec3{ey, -ex, 0}
		if !scene.ccw[i] {
			wallNormal = wallNormal.Mul(-1)
		}
		wallNormal = normalize(wallNormal)
		if d.Dot(wallNormal) >= 0 {
			continue
		}
		t, u, ok := intersectSegments(orb.Point{from[0], from[1]}, orb.Point{to[0], to[1]}, q1, q2)
		if !ok || u < 0 || u > 1 || t < 0 || t > 1 || t >= bestT {
			continue
		}
		z := from[2] + t*d[2]
		if z < building.Base || z > building.Top {
			continue
		}
		bestT = t
		normal = wallNormal
	}

	// Roof and floor
	if d[2] != 0 {
		plane, faceNormal := building.Top, worldUp
		if d[2] > 0 {
			plane, faceNormal = building.Base, worldDown
		}
		t := (plane - from[2]) / d[2]
		if t >= 0 && t <= 1 && t < bestT {
			pt := orb.Point{from[0] + t*d[0], from[1] + t*d[1]}
			if planar.RingContains(ring, pt) {
				bestT = t
				normal = faceNormal
			}
		}
	}
	if math.IsInf(bestT, 1) {
		return 0, Vec3{}, false
	}
	return bestT, normal, true
}

// intersectSegments returns parameters of intersection point of lines p1p2 and p3p4 (t - along the first one, u - along the second one)
// Note: Euclidean space
func intersectSegments(p1, p2, p3, p4 orb.Point) (float64, float64, bool) {
	rx, ry := p2.X()-p1.X(), p2.Y()-p1.Y()
	sx, sy := p4.X()-p3.X(), p4.Y()-p3.Y()
	det := rx*sy - ry*sx
	if math.Abs(det) < parallelEpsilon {
		return 0, 0, false
	}
	qx, qy := p3.X()-p1.X(), p3.Y()-p1.Y()
	t := (qx*sy - qy*sx) / det
	u := (qx*ry - qy*rx) / det
	return t, u, true
}

// openRing drops closing point and consecutive duplicates of the ring
func openRing(ring orb.Ring) orb.Ring {
	result := make(orb.Ring, 0, len(ring))
	for _, pt := range ring {
		if len(result) > 0 && result[len(result)-1].Equal(pt) {
			continue
		}
		result = append(result, pt)
	}
	if len(result) > 1 && result[0].Equal(result[len(result)-1]) {
		result = result[:len(result)-1]
	}
	return result
}

// signedArea returns area of the ring: positive for counter-clockwise order
func signedArea(ring orb.Ring) float64 {
	area := 0.0
	for k := range ring {
		q1 := ring[k]
		q2 := ring[(k+1)%len(ring)]
		area += q1.X()*q2.Y() - q2.X()*q1.Y()
	}
	return area / 2
}

// Box returns rectangular building
func Box(id SurfaceID, minX, minY, maxX, maxY, base, top float64) Building {
	return Building{
		ID: id,
		Footprint: orb.Ring{
			{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
		},
		Base: base,
		Top:  top,
	}
}

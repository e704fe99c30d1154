package osm2noise

// LayerMask selects which kinds of surfaces take part in a query
type LayerMask uint32

const (
	LayerBuildings = LayerMask(1 << iota)
	LayerTerrain
	LayerNone = LayerMask(0)
	LayerAll  = LayerBuildings | LayerTerrain
)

func (mask LayerMask) Has(layer LayerMask) bool {
	return mask&layer != 0
}

func (mask LayerMask) String() string {
	switch mask {
	case LayerNone:
		return "none"
	case LayerBuildings:
		return "buildings"
	case LayerTerrain:
		return "terrain"
	case LayerAll:
		return "all"
	}
	return "unknown"
}

// SurfaceID identifies surface (building, terrain patch) which has been hit. Empty value means "no surface"
type SurfaceID string

// Hit is a result of geometry query
type Hit struct {
	Point    Vec3
	Normal   Vec3
	Surface  SurfaceID
	Distance float64 // Distance from query origin to Point
}

// GeometryQuery is the scene service the propagation engine relies on.
//
// Implementations must be deterministic: the same query always yields the same answer.
type GeometryQuery interface {
	// LineOfSight returns first surface crossing segment [from; to]. Second value is false when segment is clear
	LineOfSight(from, to Vec3, mask LayerMask) (Hit, bool)
	// RaycastDown casts vertical ray down from given point. Hit.Distance is the height of the point over surface
	RaycastDown(from Vec3, maxDistance float64, mask LayerMask) (Hit, bool)
}

// raycast casts ray from origin along direction up to maxDistance
func raycast(query GeometryQuery, origin, direction Vec3, maxDistance float64, mask LayerMask) (Hit, bool) {
	return query.LineOfSight(origin, origin.Add(normalize(direction).Mul(maxDistance)), mask)
}

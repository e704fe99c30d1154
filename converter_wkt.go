package osm2noise

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// PrepareWKTLinestring returns WKT representation of propagation path (horizontal projection)
func PrepareWKTLinestring(tree *PathTree, chain []NodeID) string {
	line := make(orb.LineString, len(chain))
	for i, id := range chain {
		origin := tree.Value(id).Origin
		line[i] = orb.Point{origin[0], origin[1]}
	}
	return wkt.MarshalString(line)
}

// PrepareWKTPoint returns WKT representation of Point (horizontal projection)
func PrepareWKTPoint(pt Vec3) string {
	return wkt.MarshalString(orb.Point{pt[0], pt[1]})
}

// PrepareWKTProfile returns WKT representation of unfolded path: distance along the path against elevation
func PrepareWKTProfile(path []PropagationStep) string {
	line := make(orb.LineString, len(path))
	for i, step := range path {
		line[i] = step.Point()
	}
	return wkt.MarshalString(line)
}

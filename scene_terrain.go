package osm2noise

import (
	"math"

	"github.com/paulmach/orb"
)

// Terrain is a ground surface of the scene
type Terrain interface {
	// Elevation returns ground elevation at given point. Second value is false outside of terrain
	Elevation(x, y float64) (float64, bool)
	// Normal returns unit normal of the ground at given point
	Normal(x, y float64) Vec3
	// Crossing returns parameter (0..1) of the point where segment goes under the ground
	Crossing(from, to Vec3) (float64, bool)
}

// PlaneTerrain is a planar ground: z = Z0 + SlopeX*x + SlopeY*y
type PlaneTerrain struct {
	Z0     float64
	SlopeX float64
	SlopeY float64
	// Extent of terrain. Nil means infinite plane
	Extent *orb.Bound
}

// FlatTerrain returns infinite horizontal ground at given elevation
func FlatTerrain(elevation float64) *PlaneTerrain {
	return &PlaneTerrain{Z0: elevation}
}

func (terrain *PlaneTerrain) contains(x, y float64) bool {
	if terrain.Extent == nil {
		return true
	}
	return terrain.Extent.Contains(orb.Point{x, y})
}

// Elevation implements Terrain
func (terrain *PlaneTerrain) Elevation(x, y float64) (float64, bool) {
	if !terrain.contains(x, y) {
		return 0, false
	}
	return terrain.Z0 + terrain.SlopeX*x + terrain.SlopeY*y, true
}

// Normal implements Terrain
func (terrain *PlaneTerrain) Normal(x, y float64) Vec3 {
	return normalize(Vec3{-terrain.SlopeX, -terrain.SlopeY, 1})
}

// Crossing implements Terrain. Segments going up out of the ground are not blocked
func (terrain *PlaneTerrain) Crossing(from, to Vec3) (float64, bool) {
	f0 := from[2] - (terrain.Z0 + terrain.SlopeX*from[0] + terrain.SlopeY*from[1])
	f1 := to[2] - (terrain.Z0 + terrain.SlopeX*to[0] + terrain.SlopeY*to[1])
	if f0 < 0 || f1 >= 0 {
		return 0, false
	}
	t := f0 / (f0 - f1)
	if math.IsNaN(t) {
		return 0, false
	}
	x := from[0] + t*(to[0]-from[0])
	y := from[1] + t*(to[1]-from[1])
	if !terrain.contains(x, y) {
		return 0, false
	}
	return t, true
}

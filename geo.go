package osm2noise

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	earthR = 20037508.34
)

func epsg3857To4326(x, y float64) (float64, float64) {
	lon := x * 180 / earthR
	lat := math.Atan(math.Exp(y*math.Pi/earthR))*360/math.Pi - 90
	return lon, lat
}

func epsg4326To3857(lon, lat float64) (float64, float64) {
	x := lon * earthR / 180
	y := math.Log(math.Tan((90+lat)*math.Pi/360)) / (math.Pi / 180)
	y = y * earthR / 180
	return x, y
}

// LocalProjection maps geographic coordinates onto local metric plane centered at origin.
// It is Web-Mercator scaled by cos(lat0), so distances are close to real ones around origin
type LocalProjection struct {
	Origin GeoPoint
	scale  float64
	x0, y0 float64
}

// NewLocalProjection returns projection centered at given point
func NewLocalProjection(origin GeoPoint) *LocalProjection {
	x0, y0 := epsg4326To3857(origin.Lon, origin.Lat)
	return &LocalProjection{
		Origin: origin,
		scale:  math.Cos(degreesToRadians(origin.Lat)),
		x0:     x0,
		y0:     y0,
	}
}

// Forward converts geographic point into local meters (X east, Y north)
func (proj *LocalProjection) Forward(pt GeoPoint) orb.Point {
	x, y := epsg4326To3857(pt.Lon, pt.Lat)
	return orb.Point{(x - proj.x0) * proj.scale, (y - proj.y0) * proj.scale}
}

// Inverse converts local meters back into geographic point
func (proj *LocalProjection) Inverse(pt orb.Point) GeoPoint {
	lon, lat := epsg3857To4326(pt.X()/proj.scale+proj.x0, pt.Y()/proj.scale+proj.y0)
	return GeoPoint{Lon: lon, Lat: lat}
}

// ForwardRing converts geographic ring into local one
func (proj *LocalProjection) ForwardRing(pts []GeoPoint) orb.Ring {
	ring := make(orb.Ring, len(pts))
	for i, pt := range pts {
		ring[i] = proj.Forward(pt)
	}
	return ring
}

package osm2noise

import (
	"fmt"
	"math"
)

const (
	earthRadius = 6370.986884258304 // kilometers
	pi180       = math.Pi / 180.0
	pi180Rev    = 180.0 / math.Pi
)

// GeoPoint is a WGS84 point
type GeoPoint struct {
	Lat float64
	Lon float64
}

func (gp GeoPoint) String() string {
	return fmt.Sprintf("Lon: %f | Lat: %f", gp.Lon, gp.Lat)
}

func degreesToRadians(d float64) float64 {
	return d * pi180
}

func radiansTodegrees(d float64) float64 {
	return d * pi180Rev
}

// greatCircleDistance is the haversine distance between two points (kilometers)
func greatCircleDistance(p, q GeoPoint) float64 {
	phi1, phi2 := degreesToRadians(p.Lat), degreesToRadians(q.Lat)
	halfLat := math.Sin((phi2 - phi1) / 2)
	halfLon := math.Sin(degreesToRadians(q.Lon-p.Lon) / 2)
	h := halfLat*halfLat + math.Cos(phi1)*math.Cos(phi2)*halfLon*halfLon
	return 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h)) * earthRadius
}

// findCentroid averages unit vectors of the points on the sphere and projects the mean back onto the surface
func findCentroid(pts []GeoPoint) GeoPoint {
	if len(pts) == 1 {
		return pts[0]
	}
	var sum [3]float64
	for _, pt := range pts {
		lambda, phi := degreesToRadians(pt.Lon), degreesToRadians(pt.Lat)
		sum[0] += math.Cos(phi) * math.Cos(lambda)
		sum[1] += math.Cos(phi) * math.Sin(lambda)
		sum[2] += math.Sin(phi)
	}
	n := float64(len(pts))
	x, y, z := sum[0]/n, sum[1]/n, sum[2]/n
	return GeoPoint{
		Lon: radiansTodegrees(math.Atan2(y, x)),
		Lat: radiansTodegrees(math.Atan2(z, math.Hypot(x, y))),
	}
}

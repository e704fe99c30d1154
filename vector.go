package osm2noise

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulmach/orb"
)

// Vec3 is a point or direction in the scene. X - east, Y - north, Z - up
type Vec3 = mgl64.Vec3

var (
	worldUp    = Vec3{0, 0, 1}
	worldDown  = Vec3{0, 0, -1}
	worldRight = Vec3{1, 0, 0}
)

// flatten drops vertical component
func flatten(v Vec3) Vec3 {
	return Vec3{v[0], v[1], 0}
}

// distance returns Euclidean distance between two points
func distance(p, q Vec3) float64 {
	return q.Sub(p).Len()
}

// distance2D returns distance between projections of two points onto horizontal plane
func distance2D(p, q Vec3) float64 {
	return math.Hypot(q[0]-p[0], q[1]-p[1])
}

// normalize returns unit vector. Zero vector stays zero
func normalize(v Vec3) Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// angleAxis rotates vector around axis by given angle (degrees)
func angleAxis(degrees float64, axis Vec3, v Vec3) Vec3 {
	return mgl64.QuatRotate(mgl64.DegToRad(degrees), normalize(axis)).Rotate(v)
}

// unsignedAngle returns angle between two vectors in degrees [0; 180]
func unsignedAngle(from, to Vec3) float64 {
	denominator := from.Len() * to.Len()
	if denominator == 0 {
		return 0
	}
	cos := mgl64.Clamp(from.Dot(to)/denominator, -1, 1)
	return mgl64.RadToDeg(math.Acos(cos))
}

// signedAngle returns angle between two vectors in degrees [-180; 180], sign is taken from rotation around axis
func signedAngle(from, to, axis Vec3) float64 {
	angle := unsignedAngle(from, to)
	if axis.Dot(from.Cross(to)) < 0 {
		return -angle
	}
	return angle
}

// profilePoint builds point of 2D vertical profile: X - distance along the path, Y - elevation
func profilePoint(distance, elevation float64) orb.Point {
	return orb.Point{distance, elevation}
}

// findDistance returns distance between two profile points
func findDistance(p, q orb.Point) float64 {
	xdistance := p.X() - q.X()
	ydistance := p.Y() - q.Y()
	return math.Sqrt(xdistance*xdistance + ydistance*ydistance)
}

// isLeft checks whether c lies to the left of (above) directed line ab
func isLeft(a, b, c orb.Point) bool {
	return (b.X()-a.X())*(c.Y()-a.Y())-(b.Y()-a.Y())*(c.X()-a.X()) > 0
}

// elevationAngle returns angle of segment pq measured from the distance axis (radians)
func elevationAngle(p, q orb.Point) float64 {
	return math.Atan2(q.Y()-p.Y(), q.X()-p.X())
}

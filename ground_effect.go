package osm2noise

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	// Ground factor G. There is no ground class data, so it is approximated as 0.5
	groundFactor = 0.5
)

// GroundEffect returns attenuation due to ground effect between source and receiver over given mean plane (homogeneous conditions)
func GroundEffect(source, receiver orb.Point, band OctaveBand, plane MeanPlane) float64 {
	attenuation, _ := groundEffect(source, receiver, band, plane)
	return attenuation
}

// groundEffect returns ground attenuation and path ground factor Gpath.
// Attenuation is never less than -3*(1-Gpath).
func groundEffect(source, receiver orb.Point, band OctaveBand, plane MeanPlane) (float64, float64) {
	// Equivalent heights of source and receiver over mean plane
	eqSrc := plane.Project(source)
	eqRec := plane.Project(receiver)
	zSrc := findDistance(source, eqSrc)
	zRec := findDistance(receiver, eqRec)
	dp := findDistance(eqSrc, eqRec)

	gPath := groundFactor
	if dp <= 30*(zSrc+zRec) {
		if zSrc+zRec > 0 {
			gPath *= dp / (30 * (zSrc + zRec))
		} else {
			gPath = 0
		}
	}
	lowerBound := -3 * (1 - gPath)

	f := float64(band)
	k := 2 * math.Pi * f / 340
	w := 0.0185 * (math.Pow(f, 2.5) * math.Pow(gPath, 2.6)) /
		(math.Pow(f, 1.5)*math.Pow(gPath, 2.6) + 1.3e3*math.Pow(f, 0.75)*math.Pow(gPath, 1.3) + 1.16e6)
	cf := dp * (1 + 3*w*dp*math.Exp(-math.Sqrt(w*dp))) / (1 + w*dp)
	root := math.Sqrt(2 * cf / k)
	attenuation := -10 * math.Log10(4*(k*k)/(dp*dp)*
		(zSrc*zSrc-root*zSrc+cf/k)*
		(zRec*zRec-root*zRec+cf/k))
	if math.IsNaN(attenuation) || attenuation < lowerBound {
		return lowerBound, gPath
	}
	return attenuation, gPath
}

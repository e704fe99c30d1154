package osm2noise

import (
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/stat"
)

// MeanPlane is the least squares line through ground samples of a path (profile coordinates)
type MeanPlane struct {
	Start orb.Point
	End   orb.Point
}

// fitMeanPlane fits mean ground plane through given samples.
// Single sample gives horizontal line through it.
func fitMeanPlane(steps []PropagationStep) MeanPlane {
	if len(steps) == 0 {
		return MeanPlane{Start: orb.Point{0, 0}, End: orb.Point{1, 0}}
	}
	first := steps[0]
	if len(steps) < 2 {
		return flatMeanPlane(first.Ground())
	}
	xdata := make([]float64, len(steps))
	ydata := make([]float64, len(steps))
	for i, step := range steps {
		xdata[i] = step.Distance
		ydata[i] = step.GroundLevel
	}
	alpha, beta := stat.LinearRegression(xdata, ydata, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) || math.IsInf(beta, 0) {
		// All samples share the same distance
		return flatMeanPlane(orb.Point{first.Distance, stat.Mean(ydata, nil)})
	}
	last := steps[len(steps)-1]
	return MeanPlane{
		Start: orb.Point{first.Distance, alpha + beta*first.Distance},
		End:   orb.Point{last.Distance, alpha + beta*last.Distance},
	}
}

func flatMeanPlane(pt orb.Point) MeanPlane {
	return MeanPlane{Start: pt, End: orb.Point{pt.X() + 1, pt.Y()}}
}

// Project returns the closest point of mean plane to given one
func (plane MeanPlane) Project(pt orb.Point) orb.Point {
	dx := plane.End.X() - plane.Start.X()
	dy := plane.End.Y() - plane.Start.Y()
	lengthSquared := dx*dx + dy*dy
	if lengthSquared == 0 {
		return plane.Start
	}
	u := ((pt.X()-plane.Start.X())*dx + (pt.Y()-plane.Start.Y())*dy) / lengthSquared
	return orb.Point{plane.Start.X() + u*dx, plane.Start.Y() + u*dy}
}

// Height returns distance between point and mean plane
func (plane MeanPlane) Height(pt orb.Point) float64 {
	return findDistance(pt, plane.Project(pt))
}

// Mirror returns image of the point reflected by mean plane
func (plane MeanPlane) Mirror(pt orb.Point) orb.Point {
	projected := plane.Project(pt)
	return orb.Point{2*projected.X() - pt.X(), 2*projected.Y() - pt.Y()}
}

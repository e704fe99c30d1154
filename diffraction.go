package osm2noise

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	maxDiffraction = 25.0
	// Convex paths shorter than this do not change multiple diffraction coefficient
	minConvexDistance = 0.3
)

// DiffractionLoss returns pure diffraction attenuation clamped to [0; 25] dB
func DiffractionLoss(source, receiver orb.Point, band OctaveBand, edges []orb.Point, before, after MeanPlane, maxIterations int) float64 {
	loss := pureDiffraction(source, receiver, band, edges, before, after, maxIterations)
	return math.Max(math.Min(loss, maxDiffraction), 0)
}

// pureDiffraction returns diffraction attenuation without clamping.
// Planes before first edge and after last one are needed to find heights of edges over ground.
func pureDiffraction(source, receiver orb.Point, band OctaveBand, edges []orb.Point, before, after MeanPlane, maxIterations int) float64 {
	if len(edges) == 0 {
		return 0
	}
	firstEdge := edges[0]
	lastEdge := edges[len(edges)-1]
	h0 := math.Max(before.Height(firstEdge), after.Height(lastEdge))
	ch := math.Min(float64(band)*h0/250, 1)
	lambda := band.Wavelength()

	// Multiple diffraction coefficient
	c1 := 1.0
	e := 0.0
	if len(edges) > 1 {
		e = convexDistance(edges, maxIterations)
		if e > minConvexDistance {
			x := math.Pow(5*lambda/e, 2)
			c1 = (1 + x) / (1.0/3.0 + x)
		}
	}

	// Path length difference
	var delta float64
	if len(edges) == 1 {
		delta = findDistance(source, firstEdge) + findDistance(firstEdge, receiver) - findDistance(source, receiver)
		if !isLeft(source, receiver, firstEdge) {
			delta = -delta
		}
	} else {
		delta = findDistance(source, firstEdge) + e + findDistance(lastEdge, receiver) - findDistance(source, receiver)
	}

	arg := (40 / lambda) * c1 * delta
	if arg < -2 {
		return 0
	}
	return 10 * ch * math.Log10(3+arg)
}

// convexDistance returns length of convex line stretched over ordered edges.
// On each step the next point is the one seen under the highest elevation angle.
func convexDistance(pts []orb.Point, maxIterations int) float64 {
	currPt := 0
	total := 0.0
	for {
		maxIterations--
		maxAngle := math.Inf(-1)
		maxPt := currPt
		for i := currPt + 1; i < len(pts); i++ {
			// Signed angle: points below the line of sight never pull the hull down
			angle := elevationAngle(pts[currPt], pts[i])
			if angle > maxAngle {
				maxAngle = angle
				maxPt = i
			}
		}
		total += findDistance(pts[currPt], pts[maxPt])
		if maxPt == len(pts)-1 {
			break
		}
		currPt = maxPt
		if maxIterations <= 0 {
			break
		}
	}
	return total
}

// groundCorrection combines ground attenuation on one side of diffraction with diffraction difference of the image path
func groundCorrection(groundAttenuation, diffractionDifference float64) float64 {
	arg := 1 + (math.Pow(10, -groundAttenuation/20)-1)*math.Pow(10, -diffractionDifference/20)
	if arg <= 0 || math.IsNaN(arg) || math.IsInf(arg, 0) {
		return 0
	}
	return -20 * math.Log10(arg)
}

// diffractionEdges returns indices of diffraction samples of the path
func diffractionEdges(path []PropagationStep) []int {
	indices := []int{}
	for i := range path {
		if path[i].Type.IsDiffraction() {
			indices = append(indices, i)
		}
	}
	return indices
}

// diffractingAttenuation returns attenuation of the diffracted path: pure diffraction plus ground effect on source and receiver sides
func diffractingAttenuation(path []PropagationStep, band OctaveBand, maxIterations int) float64 {
	indices := diffractionEdges(path)
	if len(indices) == 0 {
		return groundAttenuation(path, band)
	}
	firstIdx := indices[0]
	lastIdx := indices[len(indices)-1]
	edges := make([]orb.Point, len(indices))
	for i, idx := range indices {
		edges[i] = path[idx].Point()
	}
	source := path[0].Point()
	receiver := path[len(path)-1].Point()

	before := fitMeanPlane(path[:firstIdx])
	afterSteps := path[lastIdx : len(path)-1]
	if len(afterSteps) == 0 {
		afterSteps = path[lastIdx : lastIdx+1]
	}
	after := fitMeanPlane(afterSteps)

	pureDiff := DiffractionLoss(source, receiver, band, edges, before, after, maxIterations)

	// Source side: ground between source and first edge, diffraction seen from image source
	sourceAttenuation := GroundEffect(source, edges[0], band, before)
	imageSource := before.Mirror(source)
	imageSourceDiff := pureDiffraction(imageSource, receiver, band, edges, before, before, maxIterations)
	groundSO := groundCorrection(sourceAttenuation, imageSourceDiff-pureDiff)

	// Receiver side: ground between last edge and receiver, diffraction seen by image receiver
	receiverAttenuation := GroundEffect(edges[len(edges)-1], receiver, band, after)
	imageReceiver := after.Mirror(receiver)
	imageReceiverDiff := pureDiffraction(source, imageReceiver, band, edges, before, after, maxIterations)
	groundOR := groundCorrection(receiverAttenuation, imageReceiverDiff-pureDiff)

	return pureDiff + groundSO + groundOR
}

package osm2noise

import (
	"math"

	"github.com/paulmach/orb"
)

// StepType classifies sample of flattened propagation path
type StepType uint16

const (
	STEP_SOURCE = StepType(iota)
	STEP_LISTENER
	STEP_PROPAGATION
	STEP_REFLECTION
	// Diffraction over horizontal edge
	STEP_DIFFRACTION
	// Diffraction around vertical edge
	STEP_DIFFRACTION_VERTICAL_EDGE
)

func (iotaIdx StepType) String() string {
	return [...]string{"source", "listener", "propagation", "reflection", "diffraction", "diffraction_vertical_edge"}[iotaIdx]
}

// IsDiffraction checks if step marks any kind of diffraction edge
func (iotaIdx StepType) IsDiffraction() bool {
	return iotaIdx == STEP_DIFFRACTION || iotaIdx == STEP_DIFFRACTION_VERTICAL_EDGE
}

// PropagationStep is 1 meter sample of the path unfolded onto vertical plane
type PropagationStep struct {
	Distance    float64 // Distance from path start
	GroundLevel float64 // Ground elevation
	Height      float64 // Height over ground
	Type        StepType
}

// Point returns position of the path sample in profile coordinates
func (step PropagationStep) Point() orb.Point {
	return profilePoint(step.Distance, step.GroundLevel+step.Height)
}

// Ground returns position of the ground under the path sample in profile coordinates
func (step PropagationStep) Ground() orb.Point {
	return profilePoint(step.Distance, step.GroundLevel)
}

// stepTypeAfter returns type of the first sample of the segment started at node of given type
func stepTypeAfter(nodeType HitType) StepType {
	switch nodeType {
	case HIT_DIFFRACTION_VERTICAL:
		return STEP_DIFFRACTION
	case HIT_DIFFRACTION_HORIZONTAL:
		return STEP_DIFFRACTION_VERTICAL_EDGE
	}
	return STEP_REFLECTION
}

// approximately compares floats with relative tolerance
func approximately(a, b float64) bool {
	return math.Abs(a-b) <= math.Max(1e-6*math.Max(math.Abs(a), math.Abs(b)), 1e-9)
}

// unfoldSegment samples segment between two tree nodes every 1 meter (in 2D).
// Returns new samples, remainder of last step to carry into next segment and false if ground has not been found for some sample.
func (model *NoiseModel) unfoldSegment(start, end PropagationNode, prevDist, remainingStep float64) ([]PropagationStep, float64, bool) {
	dir := normalize(end.Origin.Sub(start.Origin))
	dist := distance(start.Origin, end.Origin)
	dist2D := distance2D(start.Origin, end.Origin)

	steps := []PropagationStep{}
	carried := remainingStep
	lastOffset := 0.0
	for i := remainingStep; i < dist2D; i++ {
		// Fraction of the way passed in 2D defines position on 3D segment
		fraction := i / dist2D
		currPos := start.Origin.Add(dir.Mul(dist * fraction))
		hit, ok := model.query.RaycastDown(currPos, model.cfg.MaximumDistance, model.cfg.TerrainMask)
		if !ok {
			return nil, 0, false
		}
		step := PropagationStep{
			Distance:    prevDist + i,
			GroundLevel: hit.Point[2],
			Height:      hit.Distance,
		}
		switch {
		case step.Distance == 0:
			step.Type = STEP_SOURCE
		case approximately(step.Distance, prevDist+carried):
			// First sample of the segment. Because of the regular step it is not placed exactly at the edge
			step.Type = stepTypeAfter(start.Type)
		default:
			step.Type = STEP_PROPAGATION
		}
		steps = append(steps, step)
		lastOffset = i
	}
	if len(steps) == 0 {
		remainingStep -= dist2D
	} else {
		remainingStep = lastOffset + 1 - dist2D
	}
	return steps, remainingStep, true
}

// listenerStep returns final sample of the path. It is placed one step after the last one, even if it overshoots a bit
func (model *NoiseModel) listenerStep(listener Vec3, prevDist, remainingStep float64) (PropagationStep, bool) {
	hit, ok := model.query.RaycastDown(listener, model.cfg.MaximumDistance, model.cfg.TerrainMask)
	if !ok {
		return PropagationStep{}, false
	}
	return PropagationStep{
		Distance:    prevDist + remainingStep,
		GroundLevel: hit.Point[2],
		Height:      hit.Distance,
		Type:        STEP_LISTENER,
	}, true
}

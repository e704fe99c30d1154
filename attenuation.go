package osm2noise

import (
	"math"
)

const (
	// Absorption coefficient of reflecting facades. Should be read from building data when it is available
	facadeAbsorption = 0.10
)

var (
	// Atmospheric absorption coefficients (dB/km) for 20 C and 70% humidity.
	// CNOSSOS-EU expects 15 C, but values are very close. See ISO 9613-1 for exact ones
	absorptionCoefficients = map[OctaveBand]float64{
		BAND_63:   0.09,
		BAND_125:  0.26,
		BAND_250:  1.13,
		BAND_500:  2.80,
		BAND_1000: 4.98,
		BAND_2000: 9.02,
		BAND_4000: 22.9,
		BAND_8000: 76.6,
	}
	// Reflection correction of sound power: only first order reflections are modelled
	reflectionCorrection = 10 * math.Log10(1-facadeAbsorption)
)

// PathShape defines which boundary attenuation model is applied to the path
type PathShape uint16

const (
	SHAPE_GROUND = PathShape(iota)
	SHAPE_DIFFRACTING
	SHAPE_LATERAL_DIFFRACTING
)

func (iotaIdx PathShape) String() string {
	return [...]string{"ground", "diffracting", "lateral_diffracting"}[iotaIdx]
}

// GeometricDivergence returns attenuation due to spherical spreading over given distance
func GeometricDivergence(distance float64) float64 {
	return 20*math.Log10(distance) + 11.0
}

// AtmosphericAbsorption returns attenuation due to air absorption over given distance (meters)
func AtmosphericAbsorption(band OctaveBand, distance float64) float64 {
	alpha, ok := absorptionCoefficients[band]
	if !ok {
		alpha = 1.0
	}
	return alpha * distance / 1000.0
}

// groundAttenuation returns boundary attenuation of path without diffractions (homogeneous conditions)
func groundAttenuation(path []PropagationStep, band OctaveBand) float64 {
	plane := fitMeanPlane(path)
	return GroundEffect(path[0].Point(), path[len(path)-1].Point(), band, plane)
}

// lateralAttenuation combines ground effect of the direct path and diffraction of the diffracted one.
// This is an approximation: lateral diffraction is outside of strict scope of the method
func lateralAttenuation(path []PropagationStep, band OctaveBand, maxIterations int) float64 {
	return groundAttenuation(path, band) + diffractingAttenuation(path, band, maxIterations)
}

// homogeneousBoundary returns boundary attenuation for homogeneous atmospheric conditions
func homogeneousBoundary(shape PathShape, path []PropagationStep, band OctaveBand, maxIterations int) float64 {
	switch shape {
	case SHAPE_DIFFRACTING:
		return diffractingAttenuation(path, band, maxIterations)
	case SHAPE_LATERAL_DIFFRACTING:
		return lateralAttenuation(path, band, maxIterations)
	}
	return groundAttenuation(path, band)
}

// refractiveBoundary returns boundary attenuation for downward refractive conditions.
// Refractive conditions are not modelled: every path shape yields zero
func refractiveBoundary(shape PathShape, path []PropagationStep, band OctaveBand) float64 {
	return 0.0
}

// blendConditions combines levels of both atmospheric conditions weighted by their likelihood
func blendConditions(refractive, homogeneous, downwardLikelihood, homogeneousLikelihood float64) float64 {
	return 10.0 * math.Log10(
		downwardLikelihood*math.Pow(10, refractive/10)+
			(1-homogeneousLikelihood)*math.Pow(10, homogeneous/10),
	)
}

// pathFeatures describes which kinds of samples the path contains
type pathFeatures struct {
	shape         PathShape
	hasLateral    bool
	hasReflection bool
}

func inspectPath(path []PropagationStep) pathFeatures {
	hasDiffraction := false
	features := pathFeatures{}
	for _, step := range path {
		switch step.Type {
		case STEP_DIFFRACTION:
			hasDiffraction = true
		case STEP_DIFFRACTION_VERTICAL_EDGE:
			features.hasLateral = true
		case STEP_REFLECTION:
			features.hasReflection = true
		}
	}
	switch {
	case hasDiffraction:
		features.shape = SHAPE_DIFFRACTING
	case features.hasLateral:
		features.shape = SHAPE_LATERAL_DIFFRACTING
	default:
		features.shape = SHAPE_GROUND
	}
	return features
}

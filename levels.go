package osm2noise

import (
	"math"
)

var (
	// A-weighting corrections (IEC 61672-1). CNOSSOS-EU sums bands up to 4 kHz
	aWeighting = map[OctaveBand]float64{
		BAND_63:   -26.2,
		BAND_125:  -16.1,
		BAND_250:  -8.6,
		BAND_500:  -3.2,
		BAND_1000: 0.0,
		BAND_2000: 1.2,
		BAND_4000: 1.0,
	}
)

// EnergeticSum adds sound levels (dB) as energies
func EnergeticSum(levels ...float64) float64 {
	sum := 0.0
	for _, level := range levels {
		sum += math.Pow(10, level/10)
	}
	return 10 * math.Log10(sum)
}

// AWeighted returns A-weighted total of per-band levels. Bands above 4 kHz are ignored
func AWeighted(levels map[OctaveBand]float64) float64 {
	weighted := make([]float64, 0, len(levels))
	for band, level := range levels {
		correction, ok := aWeighting[band]
		if !ok {
			continue
		}
		weighted = append(weighted, level+correction)
	}
	return EnergeticSum(weighted...)
}

// Volume maps sound level (dB) onto linear [0; 1] scale: pressure in pascal divided by 2.
// Roughly 100 dB (extreme case for a road) maps to 1
func Volume(level float64) float64 {
	return math.Pow(10, level/20) * 0.00002 / 2
}

// SpeedOfSound returns speed of sound in air (m/s) for given temperature (Celsius)
func SpeedOfSound(temperature float64) float64 {
	return 331.4 + 0.6*temperature
}

// NoiseClass is a danger level of noise
type NoiseClass uint16

const (
	NOISE_NO_DATA = NoiseClass(iota)
	NOISE_QUIET
	NOISE_MODERATE
	NOISE_LOUD
)

func (iotaIdx NoiseClass) String() string {
	return [...]string{"no_data", "quiet", "moderate", "loud"}[iotaIdx]
}

// Classify maps A-weighted level onto danger level: below 65 dB is quiet, below 80 dB is moderate
func Classify(level float64) NoiseClass {
	switch {
	case math.IsNaN(level) || math.IsInf(level, -1):
		return NOISE_NO_DATA
	case level < 65:
		return NOISE_QUIET
	case level < 80:
		return NOISE_MODERATE
	}
	return NOISE_LOUD
}

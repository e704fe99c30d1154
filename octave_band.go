package osm2noise

import (
	"sort"
)

// OctaveBand is a center frequency of octave band (Hz)
type OctaveBand int

const (
	BAND_63   = OctaveBand(63)
	BAND_125  = OctaveBand(125)
	BAND_250  = OctaveBand(250)
	BAND_500  = OctaveBand(500)
	BAND_1000 = OctaveBand(1000)
	BAND_2000 = OctaveBand(2000)
	BAND_4000 = OctaveBand(4000)
	BAND_8000 = OctaveBand(8000)
)

// Bands is the fixed set of octave bands used by CNOSSOS-EU (ascending)
var Bands = []OctaveBand{BAND_63, BAND_125, BAND_250, BAND_500, BAND_1000, BAND_2000, BAND_4000, BAND_8000}

// Wavelength returns wavelength of the band for speed of sound 340 m/s
func (band OctaveBand) Wavelength() float64 {
	return 340.0 / float64(band)
}

// Emission is a sound power level (dB) per octave band
type Emission map[OctaveBand]float64

// SortedBands returns bands present in emission in ascending order
func (emission Emission) SortedBands() []OctaveBand {
	bands := make([]OctaveBand, 0, len(emission))
	for band := range emission {
		bands = append(bands, band)
	}
	sort.Slice(bands, func(i, j int) bool {
		return bands[i] < bands[j]
	})
	return bands
}

// EmissionSource provides sound power of a noise source
type EmissionSource interface {
	Emission(temperature float64) Emission
}

// ConstantEmission is a spectrum which does not depend on conditions
type ConstantEmission Emission

// Emission implements EmissionSource
func (ce ConstantEmission) Emission(temperature float64) Emission {
	emission := make(Emission, len(ce))
	for band, level := range ce {
		emission[band] = level
	}
	return emission
}

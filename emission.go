package osm2noise

import (
	"math"
)

const (
	referenceSpeed = 70.0 // km/h
)

// emissionCoefficients are CNOSSOS-EU road traffic coefficients for single octave band
type emissionCoefficients struct {
	ar float64 // Rolling noise, A
	br float64 // Rolling noise, B
	ap float64 // Propulsion noise, A
	bp float64 // Propulsion noise, B
	a  float64 // Road surface spectral correction at reference speed
	b  float64 // Road surface speed effect
}

var (
	emissionTables = map[VehicleCategory]map[OctaveBand]emissionCoefficients{
		VEHICLE_LIGHT: {
			BAND_63:   {ar: 79.9, br: 30.0, ap: 94.5, bp: -1.3, a: 0.0, b: 0.0},
			BAND_125:  {ar: 85.7, br: 41.5, ap: 89.2, bp: 7.2, a: 0.0, b: 0.0},
			BAND_250:  {ar: 84.5, br: 38.9, ap: 88.0, bp: 7.7, a: 0.0, b: 0.0},
			BAND_500:  {ar: 90.2, br: 25.7, ap: 85.9, bp: 8.0, a: 2.6, b: -3.1},
			BAND_1000: {ar: 97.3, br: 32.5, ap: 84.2, bp: 8.0, a: 2.9, b: -6.4},
			BAND_2000: {ar: 93.9, br: 37.2, ap: 86.9, bp: 8.0, a: 1.5, b: -14.0},
			BAND_4000: {ar: 84.1, br: 39.0, ap: 83.3, bp: 8.0, a: 2.3, b: -22.4},
			BAND_8000: {ar: 74.3, br: 40.0, ap: 76.1, bp: 8.0, a: 9.2, b: -11.4},
		},
		VEHICLE_MEDIUM: {
			BAND_63:   {ar: 84.0, br: 30.0, ap: 101.0, bp: -1.9},
			BAND_125:  {ar: 88.7, br: 35.8, ap: 96.5, bp: 4.7},
			BAND_250:  {ar: 91.5, br: 32.6, ap: 98.8, bp: 6.4},
			BAND_500:  {ar: 96.7, br: 23.8, ap: 96.8, bp: 6.5},
			BAND_1000: {ar: 97.4, br: 30.1, ap: 98.6, bp: 6.5},
			BAND_2000: {ar: 90.9, br: 36.2, ap: 95.2, bp: 6.5},
			BAND_4000: {ar: 83.8, br: 38.3, ap: 88.8, bp: 6.5},
			BAND_8000: {ar: 80.5, br: 40.1, ap: 82.7, bp: 6.5},
		},
		VEHICLE_HEAVY: {
			BAND_63:   {ar: 87.0, br: 30.0, ap: 104.4, bp: 0.0},
			BAND_125:  {ar: 91.7, br: 33.5, ap: 100.6, bp: 3.0},
			BAND_250:  {ar: 94.1, br: 31.3, ap: 101.7, bp: 4.6},
			BAND_500:  {ar: 100.7, br: 25.4, ap: 101.0, bp: 5.0},
			BAND_1000: {ar: 100.8, br: 31.8, ap: 100.1, bp: 5.0},
			BAND_2000: {ar: 94.3, br: 37.1, ap: 95.9, bp: 5.0},
			BAND_4000: {ar: 87.1, br: 38.6, ap: 91.3, bp: 5.0},
			BAND_8000: {ar: 82.5, br: 40.6, ap: 85.3, bp: 5.0},
		},
		VEHICLE_TWO_WHEELER_4A: {
			BAND_63:   {ap: 88.0, bp: 4.2},
			BAND_125:  {ap: 87.5, bp: 7.4},
			BAND_250:  {ap: 89.5, bp: 9.8},
			BAND_500:  {ap: 93.7, bp: 11.6},
			BAND_1000: {ap: 96.6, bp: 15.7},
			BAND_2000: {ap: 98.8, bp: 18.9},
			BAND_4000: {ap: 93.9, bp: 20.3},
			BAND_8000: {ap: 88.7, bp: 20.6},
		},
		VEHICLE_TWO_WHEELER_4B: {
			BAND_63:   {ap: 95.0, bp: 3.2},
			BAND_125:  {ap: 97.2, bp: 5.9},
			BAND_250:  {ap: 92.7, bp: 11.9},
			BAND_500:  {ap: 92.9, bp: 11.6},
			BAND_1000: {ap: 94.7, bp: 11.5},
			BAND_2000: {ap: 93.2, bp: 12.6},
			BAND_4000: {ap: 90.1, bp: 11.1},
			BAND_8000: {ap: 86.5, bp: 12.0},
		},
	}
)

// Vehicle is a road vehicle emitting noise according to CNOSSOS-EU
type Vehicle struct {
	Category     VehicleCategory
	AverageSpeed float64 // km/h
}

// NewVehicle returns vehicle of given category
func NewVehicle(category VehicleCategory, averageSpeed float64) *Vehicle {
	return &Vehicle{
		Category:     category,
		AverageSpeed: averageSpeed,
	}
}

// Emission implements EmissionSource. Unknown category produces empty emission
func (vehicle *Vehicle) Emission(temperature float64) Emission {
	table := emissionTables[vehicle.Category]
	emission := make(Emission, len(table))
	for band, coefficients := range table {
		propulsion := vehicle.propulsionNoise(coefficients)
		if vehicle.Category.IsTwoWheeler() {
			emission[band] = propulsion
			continue
		}
		rolling := vehicle.rollingNoise(coefficients, temperature)
		emission[band] = EnergeticSum(rolling, propulsion)
	}
	return emission
}

// rollingNoise returns rolling noise for standard road conditions without studded tyres
func (vehicle *Vehicle) rollingNoise(coefficients emissionCoefficients, temperature float64) float64 {
	return coefficients.ar + coefficients.br*math.Log10(vehicle.AverageSpeed/referenceSpeed) + vehicle.temperatureCorrection(temperature)
}

// propulsionNoise returns propulsion noise on flat road with constant speed
func (vehicle *Vehicle) propulsionNoise(coefficients emissionCoefficients) float64 {
	surface := coefficients.a + coefficients.b*math.Log10(vehicle.AverageSpeed/referenceSpeed)
	return coefficients.ap + coefficients.bp*(vehicle.AverageSpeed-referenceSpeed)/referenceSpeed + surface
}

// temperatureCorrection is a simplified air temperature correction of rolling noise (reference is 20 C)
func (vehicle *Vehicle) temperatureCorrection(temperature float64) float64 {
	switch vehicle.Category {
	case VEHICLE_LIGHT:
		return 0.08 * (20.0 - temperature)
	case VEHICLE_MEDIUM, VEHICLE_HEAVY:
		return 0.04 * (20.0 - temperature)
	}
	return 0
}

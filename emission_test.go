package osm2noise

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleEmissionReferenceSpeed(t *testing.T) {
	// At reference speed and temperature speed terms vanish
	vehicle := NewVehicle(VEHICLE_HEAVY, referenceSpeed)
	emission := vehicle.Emission(20)
	require.Len(t, emission, len(Bands))
	expected := 10 * math.Log10(math.Pow(10, 100.8/10)+math.Pow(10, 100.1/10))
	assert.InDelta(t, expected, emission[BAND_1000], 1e-9)
}

func TestVehicleEmissionTwoWheeler(t *testing.T) {
	vehicle := NewVehicle(VEHICLE_TWO_WHEELER_4B, referenceSpeed)
	emission := vehicle.Emission(-10)
	// Propulsion only, no temperature dependency
	assert.InDelta(t, 94.7, emission[BAND_1000], 1e-9)
	assert.Equal(t, emission, vehicle.Emission(30))
}

func TestVehicleEmissionSpeed(t *testing.T) {
	slow := NewVehicle(VEHICLE_LIGHT, 30).Emission(20)
	fast := NewVehicle(VEHICLE_LIGHT, 110).Emission(20)
	assert.Less(t, slow[BAND_1000], fast[BAND_1000])
	// Cold air makes tyres louder
	cold := NewVehicle(VEHICLE_LIGHT, 50).Emission(0)
	warm := NewVehicle(VEHICLE_LIGHT, 50).Emission(30)
	assert.Greater(t, cold[BAND_1000], warm[BAND_1000])
}

func TestVehicleEmissionUndefined(t *testing.T) {
	assert.Empty(t, NewVehicle(VEHICLE_UNDEFINED, 50).Emission(20))
}

func TestParseVehicleCategory(t *testing.T) {
	category, err := ParseVehicleCategory("Heavy")
	require.NoError(t, err)
	assert.Equal(t, VEHICLE_HEAVY, category)
	category, err = ParseVehicleCategory("4a")
	require.NoError(t, err)
	assert.Equal(t, VEHICLE_TWO_WHEELER_4A, category)
	assert.Equal(t, "two_wheeler_4a", category.String())
	_, err = ParseVehicleCategory("tram")
	assert.Error(t, err)
}

func TestConstantEmission(t *testing.T) {
	ce := ConstantEmission{BAND_2000: 70, BAND_63: 80}
	emission := ce.Emission(15)
	emission[BAND_63] = 0
	// Source spectrum is never modified through returned copy
	assert.Equal(t, 80.0, ce[BAND_63])
	if diff := cmp.Diff([]OctaveBand{BAND_63, BAND_2000}, emission.SortedBands()); diff != "" {
		t.Errorf("Bands order mismatch (-want +got):\n%s", diff)
	}
}

func TestLevels(t *testing.T) {
	assert.InDelta(t, 63.0103, EnergeticSum(60, 60), 1e-4)
	assert.True(t, math.IsInf(EnergeticSum(), -1))
	// 8 kHz band is outside of A-weighted sum
	assert.InDelta(t, 60.0, AWeighted(map[OctaveBand]float64{BAND_1000: 60, BAND_8000: 120}), 1e-9)
	assert.InDelta(t, 343.4, SpeedOfSound(20), 1e-9)
	assert.InDelta(t, 1.0, Volume(100), 1e-9)

	assert.Equal(t, NOISE_QUIET, Classify(64.9))
	assert.Equal(t, NOISE_MODERATE, Classify(65))
	assert.Equal(t, NOISE_LOUD, Classify(80))
	assert.Equal(t, NOISE_NO_DATA, Classify(math.Inf(-1)))
	assert.Equal(t, "moderate", NOISE_MODERATE.String())
}

func TestOctaveBand(t *testing.T) {
	assert.InDelta(t, 0.34, BAND_1000.Wavelength(), 1e-12)
	assert.Len(t, Bands, 8)
}

package osm2noise

import (
	"strings"

	"github.com/pkg/errors"
)

// VehicleCategory is a CNOSSOS-EU road vehicle category
type VehicleCategory uint16

const (
	VEHICLE_LIGHT = VehicleCategory(iota + 1)
	VEHICLE_MEDIUM
	VEHICLE_HEAVY
	VEHICLE_TWO_WHEELER_4A // Mopeds, scooters (<= 50 cc)
	VEHICLE_TWO_WHEELER_4B // Motorcycles (> 50 cc)
	VEHICLE_UNDEFINED      = VehicleCategory(0)
)

func (iotaIdx VehicleCategory) String() string {
	return [...]string{"undefined", "light", "medium", "heavy", "two_wheeler_4a", "two_wheeler_4b"}[iotaIdx]
}

// IsTwoWheeler checks if category has propulsion noise only
func (iotaIdx VehicleCategory) IsTwoWheeler() bool {
	return iotaIdx == VEHICLE_TWO_WHEELER_4A || iotaIdx == VEHICLE_TWO_WHEELER_4B
}

// ParseVehicleCategory converts text representation into VehicleCategory
func ParseVehicleCategory(s string) (VehicleCategory, error) {
	switch strings.ToLower(s) {
	case "light", "1":
		return VEHICLE_LIGHT, nil
	case "medium", "2":
		return VEHICLE_MEDIUM, nil
	case "heavy", "3":
		return VEHICLE_HEAVY, nil
	case "two_wheeler_4a", "4a":
		return VEHICLE_TWO_WHEELER_4A, nil
	case "two_wheeler_4b", "4b":
		return VEHICLE_TWO_WHEELER_4B, nil
	}
	return VEHICLE_UNDEFINED, errors.Errorf("Unknown vehicle category: '%s'", s)
}

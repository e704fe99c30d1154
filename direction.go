package osm2noise

// Direction is a probing direction used while searching for diffraction edges
type Direction uint16

const (
	DIRECTION_NONE = Direction(iota)
	DIRECTION_UP
	DIRECTION_DOWN
	DIRECTION_LEFT
	DIRECTION_RIGHT
)

func (iotaIdx Direction) String() string {
	return [...]string{"none", "up", "down", "left", "right"}[iotaIdx]
}

// IsLateral checks if direction goes around vertical edges
func (iotaIdx Direction) IsLateral() bool {
	return iotaIdx == DIRECTION_LEFT || iotaIdx == DIRECTION_RIGHT
}

// diffractionType returns type of node spawned after successful probe in this direction
func (iotaIdx Direction) diffractionType() HitType {
	if iotaIdx.IsLateral() {
		return HIT_DIFFRACTION_HORIZONTAL
	}
	return HIT_DIFFRACTION_VERTICAL
}

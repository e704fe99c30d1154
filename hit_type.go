package osm2noise

// HitType classifies node of propagation tree
type HitType uint16

const (
	HIT_SOURCE = HitType(iota)
	HIT_DIRECT
	HIT_REFLECTION
	// Diffraction around vertical edge (building corner)
	HIT_DIFFRACTION_HORIZONTAL
	// Diffraction over horizontal edge (rooftop)
	HIT_DIFFRACTION_VERTICAL
)

func (iotaIdx HitType) String() string {
	return [...]string{"source", "direct", "reflection", "diffraction_horizontal", "diffraction_vertical"}[iotaIdx]
}

// IsDiffraction checks if node has been produced by any kind of diffraction
func (iotaIdx HitType) IsDiffraction() bool {
	return iotaIdx == HIT_DIFFRACTION_HORIZONTAL || iotaIdx == HIT_DIFFRACTION_VERTICAL
}

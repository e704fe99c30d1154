package osm2noise

// ImageSource is a virtual sound source standing for single propagation path
type ImageSource struct {
	Position Vec3
	// Kept so it can be removed before spatial audio rendering: audio engines apply their own distance falloff
	GeometricDivergence map[OctaveBand]float64
	SoundLevel          map[OctaveBand]float64
}

func newImageSource() *ImageSource {
	return &ImageSource{
		GeometricDivergence: make(map[OctaveBand]float64),
		SoundLevel:          make(map[OctaveBand]float64),
	}
}

// RemoveDistances adds geometric divergence back to sound levels.
//
// Note: it is not idempotent, call it exactly once.
func (image *ImageSource) RemoveDistances() {
	for band, level := range image.SoundLevel {
		image.SoundLevel[band] = level + image.GeometricDivergence[band]
	}
}

// AWeighted returns A-weighted sound level of the image source
func (image *ImageSource) AWeighted() float64 {
	return AWeighted(image.SoundLevel)
}

// Delay returns time (seconds) the sound needs to travel from image source to listener
func (image *ImageSource) Delay(listener Vec3, temperature float64) float64 {
	return distance(image.Position, listener) / SpeedOfSound(temperature)
}

// Volume returns linear volume of the image source for audio playback
func (image *ImageSource) Volume() float64 {
	return Volume(image.AWeighted())
}

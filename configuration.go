package osm2noise

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const (
	maxConfigurationSize = 1 * 1024 * 1024
)

// Configuration holds every parameter of the propagation search and of the attenuation model.
// It is read-only for the engine: builder and model receive it explicitly and never modify it.
type Configuration struct {
	// Path search
	MaximumDistance     float64   `json:"maximum_distance"`     // Budget of travelled distance for single path
	RayResolution       float64   `json:"ray_resolution"`       // Step of diffraction edge scan
	CollisionChecks     int       `json:"collision_checks"`     // Maximum number of scan steps
	ReflectionAngle     int       `json:"reflection_angle"`     // Angular range of reflection sweep (degrees, per side)
	AngleSteps          int       `json:"angle_steps"`          // Sweep steps per degree
	SpecularTolerance   float64   `json:"specular_tolerance"`   // Allowed deviance from specular angle (degrees)
	SidewaysDiffraction bool      `json:"sideways_diffraction"` // Probe around vertical edges
	DownwardDiffraction bool      `json:"downward_diffraction"` // Probe under obstacles. Not a part of CNOSSOS-EU
	Reflections         bool      `json:"reflections"`
	FullPath            bool      `json:"full_path"` // Reset probing restriction when new surface has been hit
	ReflectionMask      LayerMask `json:"reflection_mask"`
	TerrainMask         LayerMask `json:"terrain_mask"`

	// Environment
	DownwardRefraction    bool    `json:"downward_refraction"` // Downward refractive conditions instead of homogeneous ones
	LongTerm              bool    `json:"long_term"`           // Weight both conditions by their likelihood
	DownwardLikelihood    float64 `json:"downward_likelihood"`
	HomogeneousLikelihood float64 `json:"homogeneous_likelihood"`
	Temperature           float64 `json:"temperature"` // Celsius, yearly average is expected

	// Noise map
	GridSize          float64 `json:"grid_size"`
	RasterRadius      float64 `json:"raster_radius"`
	RasterHeight      float64 `json:"raster_height"`       // Height of evaluation points over ground
	RasterProbeHeight float64 `json:"raster_probe_height"` // Height from which grid points are dropped onto the ground
}

// DefaultConfiguration returns configuration with default values
func DefaultConfiguration() *Configuration {
	return &Configuration{
		MaximumDistance:     800,
		RayResolution:       1,
		CollisionChecks:     30,
		ReflectionAngle:     180,
		AngleSteps:          1,
		SpecularTolerance:   0.5,
		SidewaysDiffraction: true,
		DownwardDiffraction: false,
		Reflections:         true,
		FullPath:            false,
		ReflectionMask:      LayerBuildings,
		TerrainMask:         LayerTerrain,

		DownwardRefraction:    false,
		LongTerm:              false,
		DownwardLikelihood:    0.0,
		HomogeneousLikelihood: 1.0,
		Temperature:           20.0,

		GridSize:          5,
		RasterRadius:      50,
		RasterHeight:      2,
		RasterProbeHeight: 200,
	}
}

// LoadConfiguration reads JSON file on top of default values. Omitted fields keep defaults
func LoadConfiguration(fname string) (*Configuration, error) {
	cleanPath := filepath.Clean(fname)
	if ext := filepath.Ext(cleanPath); strings.ToLower(ext) != ".json" {
		return nil, errors.Errorf("Configuration file must have .json extension, got '%s'", ext)
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "Can't stat configuration file")
	}
	if info.Size() > maxConfigurationSize {
		return nil, errors.Errorf("Configuration file is too large: %d bytes (max %d)", info.Size(), maxConfigurationSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read configuration file")
	}
	cfg := DefaultConfiguration()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "Can't parse configuration file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "Bad configuration")
	}
	return cfg, nil
}

// Validate checks that parameters are usable
func (cfg *Configuration) Validate() error {
	switch {
	case cfg.MaximumDistance <= 0:
		return errors.New("maximum_distance must be positive")
	case cfg.RayResolution <= 0:
		return errors.New("ray_resolution must be positive")
	case cfg.CollisionChecks < 0:
		return errors.New("collision_checks can't be negative")
	case cfg.ReflectionAngle < 0:
		return errors.New("reflection_angle can't be negative")
	case cfg.AngleSteps <= 0:
		return errors.New("angle_steps must be positive")
	case cfg.SpecularTolerance < 0:
		return errors.New("specular_tolerance can't be negative")
	case cfg.DownwardLikelihood < 0 || cfg.DownwardLikelihood > 1:
		return errors.New("downward_likelihood must be in [0; 1]")
	case cfg.HomogeneousLikelihood < 0 || cfg.HomogeneousLikelihood > 1:
		return errors.New("homogeneous_likelihood must be in [0; 1]")
	case cfg.GridSize <= 0:
		return errors.New("grid_size must be positive")
	case cfg.RasterRadius < 0:
		return errors.New("raster_radius can't be negative")
	}
	return nil
}

// angleStep returns sweep step for reflections (degrees)
func (cfg *Configuration) angleStep() float64 {
	return 1.0 / float64(cfg.AngleSteps)
}

// sweepIterations returns number of sweep steps per side
func (cfg *Configuration) sweepIterations() int {
	return cfg.ReflectionAngle * cfg.AngleSteps
}

// convexIterations returns safety cap for convex distance walk
func (cfg *Configuration) convexIterations() int {
	n := int(cfg.MaximumDistance / cfg.RayResolution)
	if n < 1 {
		return 1
	}
	return n
}

func (cfg *Configuration) String() string {
	return fmt.Sprintf(`
Simulation parameters:
	maximum_distance: %f
	ray_resolution: %f
	collision_checks: %d
	reflection_angle: %d
	angle_steps: %d
	specular_tolerance: %f
	sideways_diffraction enabled?: %t
	downward_diffraction enabled?: %t
	reflections enabled?: %t
	full_path enabled?: %t
	downward_refraction?: %t
	long_term?: %t
	downward_likelihood: %f
	homogeneous_likelihood: %f
	temperature: %f
	`,
		cfg.MaximumDistance,
		cfg.RayResolution,
		cfg.CollisionChecks,
		cfg.ReflectionAngle,
		cfg.AngleSteps,
		cfg.SpecularTolerance,
		cfg.SidewaysDiffraction,
		cfg.DownwardDiffraction,
		cfg.Reflections,
		cfg.FullPath,
		cfg.DownwardRefraction,
		cfg.LongTerm,
		cfg.DownwardLikelihood,
		cfg.HomogeneousLikelihood,
		cfg.Temperature,
	)
}

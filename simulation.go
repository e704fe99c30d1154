package osm2noise

import (
	"log"
	"math"
)

// NoiseEmitter is a placed noise source
type NoiseEmitter struct {
	Name     string
	Position Vec3
	Source   EmissionSource
}

// SourceResult is a propagation outcome of single emitter
type SourceResult struct {
	Name   string
	Tree   *PathTree
	Images []*ImageSource
}

// AWeighted returns total A-weighted level of every image source of the emitter
func (result SourceResult) AWeighted() float64 {
	levels := make([]float64, 0, len(result.Images))
	for _, image := range result.Images {
		levels = append(levels, image.AWeighted())
	}
	if len(levels) == 0 {
		return math.Inf(-1)
	}
	return EnergeticSum(levels...)
}

// Simulation evaluates noise of every emitter at a listener
type Simulation struct {
	Query   GeometryQuery
	Config  *Configuration
	Sources []NoiseEmitter

	Verbose bool
	Logger  *log.Logger
}

// NewSimulation returns simulation with default configuration when nil is passed
func NewSimulation(query GeometryQuery, cfg *Configuration, sources ...NoiseEmitter) *Simulation {
	if cfg == nil {
		cfg = DefaultConfiguration()
	}
	return &Simulation{
		Query:   query,
		Config:  cfg,
		Sources: sources,
		Logger:  log.Default(),
	}
}

// Run builds fresh propagation tree for every emitter and turns it into image sources.
// Emitters are processed sequentially.
func (sim *Simulation) Run(listener Vec3) []SourceResult {
	logger := sim.Logger
	if logger == nil {
		logger = log.Default()
	}
	builder := NewPathTreeBuilder(sim.Query, sim.Config, WithVerbose(sim.Verbose), WithLogger(logger))
	model := NewNoiseModel(sim.Query, sim.Config, WithModelVerbose(sim.Verbose), WithModelLogger(logger))
	results := make([]SourceResult, 0, len(sim.Sources))
	for _, emitter := range sim.Sources {
		tree := builder.Build(emitter.Position, listener)
		images := model.CalculateNoise(tree, emitter.Source)
		if sim.Verbose {
			logger.Printf("Source '%s': %d image sources\n", emitter.Name, len(images))
		}
		results = append(results, SourceResult{
			Name:   emitter.Name,
			Tree:   tree,
			Images: images,
		})
	}
	return results
}

// LevelAt returns total A-weighted level (dB) of every emitter at the point.
// Point which can't be reached by any path gives -Inf
func (sim *Simulation) LevelAt(point Vec3) float64 {
	levels := []float64{}
	for _, result := range sim.Run(point) {
		for _, image := range result.Images {
			levels = append(levels, image.AWeighted())
		}
	}
	if len(levels) == 0 {
		return math.Inf(-1)
	}
	return EnergeticSum(levels...)
}

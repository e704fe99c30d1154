package osm2noise

import (
	"log"
)

// NoiseModel converts trees of propagation paths into image sources (CNOSSOS-EU, NMPB-2008 based propagation)
type NoiseModel struct {
	query   GeometryQuery
	cfg     *Configuration
	verbose bool
	logger  *log.Logger
}

// NewNoiseModel returns model working against given scene
func NewNoiseModel(query GeometryQuery, cfg *Configuration, options ...func(*NoiseModel)) *NoiseModel {
	model := &NoiseModel{
		query:  query,
		cfg:    cfg,
		logger: log.Default(),
	}
	for _, option := range options {
		option(model)
	}
	return model
}

// WithModelVerbose enables logging of skipped paths
func WithModelVerbose(verbose bool) func(*NoiseModel) {
	return func(model *NoiseModel) {
		model.verbose = verbose
	}
}

// WithModelLogger replaces default logger
func WithModelLogger(logger *log.Logger) func(*NoiseModel) {
	return func(model *NoiseModel) {
		model.logger = logger
	}
}

// CalculateNoise returns image source for every path of the tree which ends at listener.
//
// Paths whose samples can't find the ground are skipped silently. Empty emission yields no images.
func (model *NoiseModel) CalculateNoise(tree *PathTree, source EmissionSource) []*ImageSource {
	emission := source.Emission(model.cfg.Temperature)
	if len(emission) == 0 {
		return nil
	}
	images := []*ImageSource{}
	model.walk(tree, func(path []PropagationStep, incomingDir Vec3, directPathDistance float64, listener Vec3) {
		images = append(images, model.createImage(path, incomingDir, directPathDistance, listener, emission))
	})
	return images
}

// UnfoldPaths returns every complete path of the tree flattened onto vertical plane
func (model *NoiseModel) UnfoldPaths(tree *PathTree) [][]PropagationStep {
	paths := [][]PropagationStep{}
	model.walk(tree, func(path []PropagationStep, _ Vec3, _ float64, _ Vec3) {
		paths = append(paths, path)
	})
	return paths
}

type pathVisitor func(path []PropagationStep, incomingDir Vec3, directPathDistance float64, listener Vec3)

func (model *NoiseModel) walk(tree *PathTree, visit pathVisitor) {
	root := tree.Root()
	for _, child := range tree.Children(root) {
		model.pathFromTo(tree, root, root, child, 0, 0, nil, visit)
	}
}

// pathFromTo unfolds segment (stepStart; end) and goes on towards the leaves.
// Every branch owns its copy of samples collected so far.
func (model *NoiseModel) pathFromTo(tree *PathTree, pathStart, stepStart, end NodeID, prevDist, remainingStep float64, steps []PropagationStep, visit pathVisitor) {
	startNode := tree.Value(stepStart)
	endNode := tree.Value(end)
	segment, remainingStep, ok := model.unfoldSegment(startNode, endNode, prevDist, remainingStep)
	if !ok {
		if model.verbose {
			model.logger.Printf("Ground not found between %s and %s, path skipped\n", startNode, endNode)
		}
		return
	}
	path := make([]PropagationStep, 0, len(steps)+len(segment)+1)
	path = append(path, steps...)
	path = append(path, segment...)
	dist2D := distance2D(startNode.Origin, endNode.Origin)

	if endNode.Type != HIT_DIRECT {
		for _, child := range tree.Children(end) {
			model.pathFromTo(tree, pathStart, end, child, prevDist+dist2D, remainingStep, path, visit)
		}
		return
	}

	last, ok := model.listenerStep(endNode.Origin, prevDist+dist2D, remainingStep)
	if !ok {
		if model.verbose {
			model.logger.Printf("Ground not found under listener %s, path skipped\n", endNode)
		}
		return
	}
	path = append(path, last)
	if len(path) < 2 {
		return
	}
	incomingDir := normalize(endNode.Origin.Sub(startNode.Origin))
	directPathDistance := distance(tree.Value(pathStart).Origin, endNode.Origin)
	visit(path, incomingDir, directPathDistance, endNode.Origin)
}

// createImage evaluates attenuation of the unfolded path for every octave band
func (model *NoiseModel) createImage(path []PropagationStep, incomingDir Vec3, directPathDistance float64, listener Vec3, emission Emission) *ImageSource {
	image := newImageSource()
	features := inspectPath(path)
	pathLength := path[len(path)-1].Distance
	divergenceDistance := pathLength
	if features.hasLateral {
		divergenceDistance = directPathDistance
	}
	image.Position = listener.Sub(incomingDir.Mul(divergenceDistance))
	maxIterations := model.cfg.convexIterations()

	for _, band := range emission.SortedBands() {
		soundPower := emission[band]
		if features.hasReflection {
			soundPower += reflectionCorrection
		}
		geometricDivergence := GeometricDivergence(divergenceDistance)
		image.GeometricDivergence[band] = geometricDivergence
		atmosphericAbsorption := AtmosphericAbsorption(band, pathLength)

		refractiveSoundLevel, homogeneousSoundLevel := 0.0, 0.0
		if model.cfg.LongTerm || model.cfg.DownwardRefraction {
			boundary := refractiveBoundary(features.shape, path, band)
			refractiveSoundLevel = soundPower - (geometricDivergence + atmosphericAbsorption + boundary)
		}
		if model.cfg.LongTerm || !model.cfg.DownwardRefraction {
			boundary := homogeneousBoundary(features.shape, path, band, maxIterations)
			homogeneousSoundLevel = soundPower - (geometricDivergence + atmosphericAbsorption + boundary)
		}

		switch {
		case model.cfg.LongTerm:
			image.SoundLevel[band] = blendConditions(refractiveSoundLevel, homogeneousSoundLevel, model.cfg.DownwardLikelihood, model.cfg.HomogeneousLikelihood)
		case model.cfg.DownwardRefraction:
			image.SoundLevel[band] = refractiveSoundLevel
		default:
			image.SoundLevel[band] = homogeneousSoundLevel
		}
	}
	return image
}

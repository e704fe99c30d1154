package osm2noise

import (
	"log"
	"math"
)

const (
	// Distance to push points off (or into) a surface, so following queries behave
	surfaceOffset = 0.01
	// Cross products shorter than this are treated as zero (parallel vectors)
	parallelEpsilon = 1e-9
)

// PathTreeBuilder grows trees of propagation paths between noise sources and a listener
type PathTreeBuilder struct {
	query   GeometryQuery
	cfg     *Configuration
	verbose bool
	debug   bool
	logger  *log.Logger
}

// NewPathTreeBuilder returns builder working against given scene
func NewPathTreeBuilder(query GeometryQuery, cfg *Configuration, options ...func(*PathTreeBuilder)) *PathTreeBuilder {
	builder := &PathTreeBuilder{
		query:  query,
		cfg:    cfg,
		logger: log.Default(),
	}
	for _, option := range options {
		option(builder)
	}
	return builder
}

// Build returns tree of every propagation path found from source to listener.
//
// Previous trees are never reused: listener movement requires new call.
func (builder *PathTreeBuilder) Build(source, listener Vec3) *PathTree {
	tree := NewTree(PropagationNode{
		Origin: source,
		Type:   HIT_SOURCE,
		Debug:  builder.debug,
	})
	root := tree.Root()
	builder.fireAt(tree, root, listener, builder.cfg.MaximumDistance, DIRECTION_NONE, "")
	if builder.cfg.Reflections {
		builder.reflectToward(tree, root, listener, builder.cfg.MaximumDistance)
	}
	if builder.verbose {
		builder.logger.Printf("Path tree from %v: %d nodes, %d paths\n", source, tree.Len(), len(Paths(tree)))
	}
	return tree
}

// fireAt tries to reach listener directly from the node. If something is in the way, it looks for diffraction edges of the obstacle
func (builder *PathTreeBuilder) fireAt(tree *PathTree, id NodeID, listener Vec3, remaining float64, incoming Direction, lastSurface SurfaceID) {
	node := tree.Value(id)
	hit, blocked := builder.query.LineOfSight(node.Origin, listener, builder.cfg.ReflectionMask)
	if !blocked {
		if distance(node.Origin, listener) > remaining {
			builder.logf(node.Debug, "[%s] listener is visible but too far away: %f > %f\n", node, distance(node.Origin, listener), remaining)
			tree.RemoveSelf(id)
			return
		}
		builder.logf(node.Debug, "[%s] listener reached\n", node)
		tree.AddChild(id, PropagationNode{
			Origin: listener,
			Type:   HIT_DIRECT,
			Debug:  node.Debug,
		})
		return
	}

	if builder.cfg.FullPath && hit.Surface != lastSurface {
		incoming = DIRECTION_NONE
	}
	lastSurface = hit.Surface
	// Push target into the obstacle, so the first scan step starts from inside of it
	target := hit.Point.Sub(hit.Normal.Mul(surfaceOffset))
	side, up := localFrame(hit, listener)
	builder.logf(node.Debug, "[%s] blocked by '%s' at %v (incoming direction: %s)\n", node, hit.Surface, hit.Point, incoming)

	probes := []Direction{}
	switch incoming {
	case DIRECTION_NONE:
		if builder.cfg.SidewaysDiffraction {
			probes = append(probes, DIRECTION_RIGHT, DIRECTION_LEFT)
		}
		probes = append(probes, DIRECTION_UP)
		if builder.cfg.DownwardDiffraction {
			probes = append(probes, DIRECTION_DOWN)
		}
	case DIRECTION_RIGHT, DIRECTION_LEFT:
		if builder.cfg.SidewaysDiffraction {
			probes = append(probes, incoming)
		}
	case DIRECTION_UP:
		probes = append(probes, DIRECTION_UP)
	case DIRECTION_DOWN:
		if builder.cfg.DownwardDiffraction {
			probes = append(probes, DIRECTION_DOWN)
		}
	}
	for _, probe := range probes {
		builder.scanCast(tree, id, listener, target, probeVector(probe, hit.Normal, side, up), remaining, probe, lastSurface)
	}

	if tree.ChildrenCount(id) == 0 {
		builder.logf(node.Debug, "[%s] dead end\n", node)
		tree.RemoveSelf(id)
	}
}

// scanCast walks probe point along direction until it becomes visible from the node. Visible probe point is a diffraction edge
func (builder *PathTreeBuilder) scanCast(tree *PathTree, id NodeID, listener, target, direction Vec3, remaining float64, dirName Direction, lastSurface SurfaceID) {
	node := tree.Value(id)
	for i := 0; i < builder.cfg.CollisionChecks; i++ {
		target = target.Add(direction.Mul(builder.cfg.RayResolution))
		hit, blocked := builder.query.LineOfSight(node.Origin, target, builder.cfg.ReflectionMask)
		if blocked {
			// Probe could slide onto another surface right away
			lastSurface = hit.Surface
			continue
		}
		remaining -= distance(node.Origin, target)
		if remaining < 0 {
			builder.logf(node.Debug, "[%s] %s edge at %v is out of distance budget\n", node, dirName, target)
			return
		}
		if distance(listener, node.Origin) < distance(listener, target) {
			builder.logf(node.Debug, "[%s] %s edge at %v leads away from listener\n", node, dirName, target)
			return
		}
		child := tree.AddChild(id, PropagationNode{
			Origin:  target,
			Type:    dirName.diffractionType(),
			Surface: lastSurface,
			Debug:   node.Debug,
		})
		builder.logf(node.Debug, "[%s] %s edge found at %v\n", node, dirName, target)
		builder.fireAt(tree, child, listener, remaining, dirName, lastSurface)
		return
	}
	builder.logf(node.Debug, "[%s] no %s edge within %d steps\n", node, dirName, builder.cfg.CollisionChecks)
}

// reflectToward sweeps two rays from the node (one per rotation sense) and keeps specular reflections heading to listener
func (builder *PathTreeBuilder) reflectToward(tree *PathTree, id NodeID, listener Vec3, maxDistance float64) {
	node := tree.Value(id)
	directionRight := listener.Sub(node.Origin)
	directionLeft := directionRight
	axis := sweepAxis(directionRight)
	step := builder.cfg.angleStep()
	for i := 0; i < builder.cfg.sweepIterations(); i++ {
		directionRight = angleAxis(step, axis, directionRight)
		builder.reflect(tree, id, listener, directionRight, axis, maxDistance, DIRECTION_RIGHT)
		directionLeft = angleAxis(-step, axis, directionLeft)
		builder.reflect(tree, id, listener, directionLeft, axis, maxDistance, DIRECTION_LEFT)
	}
}

func (builder *PathTreeBuilder) reflect(tree *PathTree, id NodeID, listener, direction, axis Vec3, maxDistance float64, sense Direction) {
	node := tree.Value(id)
	hit, ok := raycast(builder.query, node.Origin, direction, builder.cfg.MaximumDistance, builder.cfg.ReflectionMask)
	if !ok {
		return
	}
	reflectionPoint := hit.Point.Add(hit.Normal.Mul(surfaceOffset))
	deviation := signedAngle(hit.Normal, hit.Point.Sub(node.Origin), axis) + signedAngle(hit.Normal, hit.Point.Sub(listener), axis)
	if math.Abs(deviation) > builder.cfg.SpecularTolerance {
		return
	}
	child := tree.AddChild(id, PropagationNode{
		Origin:  reflectionPoint,
		Type:    HIT_REFLECTION,
		Surface: hit.Surface,
		Debug:   node.Debug,
	})
	builder.logf(node.Debug, "[%s] specular reflection on '%s' at %v\n", node, hit.Surface, reflectionPoint)
	builder.fireAt(tree, child, listener, maxDistance-distance(node.Origin, hit.Point), sense, hit.Surface)
}

func (builder *PathTreeBuilder) logf(debug bool, format string, args ...interface{}) {
	if !builder.verbose && !debug {
		return
	}
	builder.logger.Printf(format, args...)
}

// localFrame returns (side, up) axes of the hit point.
// For horizontal surfaces "up" is turned to face the listener, since there is no vertical reference.
func localFrame(hit Hit, listener Vec3) (Vec3, Vec3) {
	if hit.Normal.Cross(worldUp).Len() < parallelEpsilon {
		up := normalize(flatten(listener.Sub(hit.Point)))
		if up.Len() == 0 {
			up = worldRight
		}
		side := normalize(hit.Normal.Cross(up))
		return side, up
	}
	side := normalize(hit.Normal.Cross(worldUp))
	up := normalize(side.Cross(hit.Normal))
	return side, up
}

// probeVector turns surface normal into scanning direction
func probeVector(direction Direction, normal, side, up Vec3) Vec3 {
	switch direction {
	case DIRECTION_RIGHT:
		return angleAxis(90, up, normal)
	case DIRECTION_LEFT:
		return angleAxis(-90, up, normal)
	case DIRECTION_UP:
		return angleAxis(90, side, normal)
	case DIRECTION_DOWN:
		return angleAxis(-90, side, normal)
	}
	return Vec3{}
}

// sweepAxis returns rotation axis which keeps reflection sweep in the plane containing source and listener
func sweepAxis(direction Vec3) Vec3 {
	sideways := direction.Cross(worldUp)
	if sideways.Len() < parallelEpsilon {
		return worldRight
	}
	return normalize(direction.Cross(sideways))
}

package osm2noise

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathTypes(tree *PathTree, chain []NodeID) []HitType {
	types := make([]HitType, len(chain))
	for i, id := range chain {
		types[i] = tree.Value(id).Type
	}
	return types
}

func TestBuildClearLine(t *testing.T) {
	scene, err := NewScene(FlatTerrain(0))
	require.NoError(t, err)
	source := Vec3{0, 0, 1}
	listener := Vec3{50, 0, 1}

	tree := NewPathTreeBuilder(scene, DefaultConfiguration()).Build(source, listener)
	paths := Paths(tree)
	require.Len(t, paths, 1)
	assert.Equal(t, []HitType{HIT_SOURCE, HIT_DIRECT}, pathTypes(tree, paths[0]))
	assert.Equal(t, listener, tree.Value(paths[0][1]).Origin)
	assert.Equal(t, 2, tree.Len())
}

func TestBuildTooFar(t *testing.T) {
	scene, err := NewScene(FlatTerrain(0))
	require.NoError(t, err)
	cfg := DefaultConfiguration()
	cfg.MaximumDistance = 30

	tree := NewPathTreeBuilder(scene, cfg).Build(Vec3{0, 0, 1}, Vec3{50, 0, 1})
	assert.Empty(t, Paths(tree))
	assert.Equal(t, 1, tree.Len())
	assert.Equal(t, HIT_SOURCE, tree.Value(tree.Root()).Type)
}

func TestBuildOverWall(t *testing.T) {
	scene, err := NewScene(FlatTerrain(0), Box("wall", 20, -50, 22, 50, 0, 10))
	require.NoError(t, err)
	source := Vec3{0, 0, 0.5}
	listener := Vec3{50, 0, 1.5}

	buf := &bytes.Buffer{}
	builder := NewPathTreeBuilder(scene, DefaultConfiguration(), WithDebug(true), WithLogger(log.New(buf, "", 0)))
	tree := builder.Build(source, listener)

	paths := Paths(tree)
	require.Len(t, paths, 1)
	assert.Equal(t, []HitType{HIT_SOURCE, HIT_DIFFRACTION_VERTICAL, HIT_DIRECT}, pathTypes(tree, paths[0]))

	edge := tree.Value(paths[0][1])
	assert.Equal(t, SurfaceID("wall"), edge.Surface)
	assert.Greater(t, edge.Origin[2], 10.0)
	assert.Less(t, edge.Origin[2], 12.0)
	assert.InDelta(t, 20.0, edge.Origin[0], 0.1)
	// Every node of the tree ends up in a path: dead ends are pruned
	assert.Equal(t, 3, tree.Len())
	assert.Contains(t, buf.String(), "edge found")
}

func TestBuildWithoutDiffraction(t *testing.T) {
	scene, err := NewScene(FlatTerrain(0), Box("wall", 20, -50, 22, 50, 0, 10))
	require.NoError(t, err)
	cfg := DefaultConfiguration()
	// Scanning is limited by the number of probe steps: the roof is out of reach
	cfg.CollisionChecks = 5

	tree := NewPathTreeBuilder(scene, cfg).Build(Vec3{0, 0, 0.5}, Vec3{50, 0, 1.5})
	assert.Empty(t, Paths(tree))
	assert.Equal(t, 1, tree.Len())
}

func TestBuildAroundCorner(t *testing.T) {
	// Tall narrow building: going around is the only way
	scene, err := NewScene(FlatTerrain(0), Box("tower", 20, -3, 22, 3, 0, 100))
	require.NoError(t, err)

	tree := NewPathTreeBuilder(scene, DefaultConfiguration()).Build(Vec3{0, 0, 1}, Vec3{50, 0, 1})
	paths := Paths(tree)
	require.NotEmpty(t, paths)
	for _, chain := range paths {
		types := pathTypes(tree, chain)
		assert.Equal(t, HIT_SOURCE, types[0])
		assert.Equal(t, HIT_DIRECT, types[len(types)-1])
		assert.Contains(t, types, HIT_DIFFRACTION_HORIZONTAL)
	}
}

func TestBuildReflection(t *testing.T) {
	scene, err := NewScene(FlatTerrain(0), Box("facade", -50, 10, 60, 12, 0, 20))
	require.NoError(t, err)
	source := Vec3{0, 0, 1}
	listener := Vec3{20, 0, 1}

	tree := NewPathTreeBuilder(scene, DefaultConfiguration()).Build(source, listener)
	paths := Paths(tree)
	require.Len(t, paths, 2)
	assert.Equal(t, []HitType{HIT_SOURCE, HIT_DIRECT}, pathTypes(tree, paths[0]))
	assert.Equal(t, []HitType{HIT_SOURCE, HIT_REFLECTION, HIT_DIRECT}, pathTypes(tree, paths[1]))

	reflection := tree.Value(paths[1][1])
	assert.Equal(t, SurfaceID("facade"), reflection.Surface)
	assert.InDelta(t, 10.0, reflection.Origin[0], 0.01)
	assert.InDelta(t, 10.0-surfaceOffset, reflection.Origin[1], 1e-6)
}

func TestBuildNoReflections(t *testing.T) {
	scene, err := NewScene(FlatTerrain(0), Box("facade", -50, 10, 60, 12, 0, 20))
	require.NoError(t, err)
	cfg := DefaultConfiguration()
	cfg.Reflections = false

	tree := NewPathTreeBuilder(scene, cfg).Build(Vec3{0, 0, 1}, Vec3{20, 0, 1})
	assert.Len(t, Paths(tree), 1)
}

func TestBuildFullPath(t *testing.T) {
	// Low wall is passed over the top, then the tower can only be passed around
	scene, err := NewScene(FlatTerrain(0),
		Box("low", 10, -50, 11, 50, 0, 3),
		Box("tower", 30, -3, 31, 3, 0, 100),
	)
	require.NoError(t, err)
	source := Vec3{0, 0, 1}
	listener := Vec3{50, 0, 1}
	cfg := DefaultConfiguration()
	cfg.Reflections = false

	// Restricted: after going up, the tower is probed upwards only
	buf := &bytes.Buffer{}
	tree := NewPathTreeBuilder(scene, cfg, WithDebug(true), WithLogger(log.New(buf, "", 0))).Build(source, listener)
	assert.Empty(t, Paths(tree))
	assert.Equal(t, 1, tree.Len())
	assert.Contains(t, buf.String(), "blocked by 'tower'")
	assert.Contains(t, buf.String(), "(incoming direction: up)")
	assert.NotContains(t, buf.String(), "right edge found")

	// New surface resets restriction
	cfg.FullPath = true
	tree = NewPathTreeBuilder(scene, cfg).Build(source, listener)
	paths := Paths(tree)
	require.Len(t, paths, 2)
	for _, chain := range paths {
		assert.Equal(t, []HitType{HIT_SOURCE, HIT_DIFFRACTION_VERTICAL, HIT_DIFFRACTION_HORIZONTAL, HIT_DIRECT}, pathTypes(tree, chain))
		assert.Equal(t, SurfaceID("low"), tree.Value(chain[1]).Surface)
		assert.Equal(t, SurfaceID("tower"), tree.Value(chain[2]).Surface)
		assert.Greater(t, tree.Value(chain[1]).Origin[2], 3.0)
	}
}

func TestBuildDownwardDiffraction(t *testing.T) {
	// Floating obstacle: the only gap is under it
	scene, err := NewScene(FlatTerrain(0), Box("bridge", 20, -50, 22, 50, 3, 100))
	require.NoError(t, err)
	source := Vec3{0, 0, 5}
	listener := Vec3{50, 0, 5}
	cfg := DefaultConfiguration()
	cfg.Reflections = false

	tree := NewPathTreeBuilder(scene, cfg).Build(source, listener)
	assert.Empty(t, Paths(tree))

	cfg.DownwardDiffraction = true
	tree = NewPathTreeBuilder(scene, cfg).Build(source, listener)
	paths := Paths(tree)
	require.Len(t, paths, 1)
	assert.Equal(t, []HitType{HIT_SOURCE, HIT_DIFFRACTION_VERTICAL, HIT_DIRECT}, pathTypes(tree, paths[0]))
	edge := tree.Value(paths[0][1])
	assert.Less(t, edge.Origin[2], 3.0)
	assert.InDelta(t, 20.0, edge.Origin[0], 0.1)
}

func TestBuildFineReflectionSweep(t *testing.T) {
	scene, err := NewScene(FlatTerrain(0), Box("facade", -50, 10, 60, 12, 0, 20))
	require.NoError(t, err)
	cfg := DefaultConfiguration()
	cfg.AngleSteps = 4
	assert.Equal(t, 0.25, cfg.angleStep())

	tree := NewPathTreeBuilder(scene, cfg).Build(Vec3{0, 0, 1}, Vec3{20, 0, 1})
	paths := Paths(tree)
	// Quarter-degree rays next to the specular one fit into tolerance as well
	require.Greater(t, len(paths), 2)
	for _, chain := range paths[1:] {
		assert.Equal(t, []HitType{HIT_SOURCE, HIT_REFLECTION, HIT_DIRECT}, pathTypes(tree, chain))
		reflection := tree.Value(chain[1])
		assert.Equal(t, SurfaceID("facade"), reflection.Surface)
		assert.InDelta(t, 10.0, reflection.Origin[0], 0.1)
	}
}

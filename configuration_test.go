package osm2noise

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfiguration(t *testing.T, name, content string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fname, []byte(content), 0644))
	return fname
}

func TestLoadConfiguration(t *testing.T) {
	fname := writeConfiguration(t, "noise.json", `{"maximum_distance": 300, "reflections": false, "temperature": 10.5}`)
	cfg, err := LoadConfiguration(fname)
	require.NoError(t, err)
	assert.Equal(t, 300.0, cfg.MaximumDistance)
	assert.False(t, cfg.Reflections)
	assert.Equal(t, 10.5, cfg.Temperature)
	// Omitted fields keep defaults
	assert.Equal(t, 30, cfg.CollisionChecks)
	assert.Equal(t, LayerBuildings, cfg.ReflectionMask)
	assert.Equal(t, 300, cfg.convexIterations())
}

func TestLoadConfigurationErrors(t *testing.T) {
	_, err := LoadConfiguration(writeConfiguration(t, "noise.yaml", `{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must have .json extension")

	_, err = LoadConfiguration(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadConfiguration(writeConfiguration(t, "broken.json", `{"maximum_distance": `))
	assert.Error(t, err)

	_, err = LoadConfiguration(writeConfiguration(t, "bad.json", `{"angle_steps": 0}`))
	assert.Error(t, err)

	huge := `{"temperature": 20` + strings.Repeat(" ", maxConfigurationSize) + `}`
	_, err = LoadConfiguration(writeConfiguration(t, "huge.json", huge))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestConfigurationHelpers(t *testing.T) {
	cfg := DefaultConfiguration()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1.0, cfg.angleStep())
	assert.Equal(t, 180, cfg.sweepIterations())
	assert.Equal(t, 800, cfg.convexIterations())

	cfg.AngleSteps = 4
	assert.Equal(t, 0.25, cfg.angleStep())
	assert.Equal(t, 720, cfg.sweepIterations())

	cfg.MaximumDistance = 0.5
	assert.Equal(t, 1, cfg.convexIterations())
	assert.Contains(t, cfg.String(), "maximum_distance")

	cfg = DefaultConfiguration()
	cfg.DownwardLikelihood = 2
	assert.Error(t, cfg.Validate())
}

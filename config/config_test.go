package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jt05610/petri-industry/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "info", c.Log.Level)
	assert.False(t, c.Industry.AllowSelfLoops)
	assert.Equal(t, 30, c.UI.MaxLabelSize)
}

func TestSet(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Set("ui.maxLabelSize", " 12 "))
	assert.Equal(t, 12, c.UI.MaxLabelSize)
	require.NoError(t, c.Set("ui.labelDistanceMax", "80.5"))
	assert.Equal(t, 80.5, c.UI.LabelDistanceMax)
	require.NoError(t, c.Set("industry.allowSelfLoops", "true"))
	assert.True(t, c.Industry.AllowSelfLoops)

	v, err := c.Get("ui.labelDistanceMax")
	require.NoError(t, err)
	assert.Equal(t, "80.5", v)

	assert.ErrorIs(t, c.Set("ui.colour", "red"), config.ErrUnknownKey)
	assert.ErrorIs(t, c.Set("ui.maxLabelSize", "many"), config.ErrInvalidValue)
	_, err = c.Get("nope")
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "PETRI_UI_MAX_LABEL_SIZE", config.EnvName("ui.maxLabelSize"))
	assert.Equal(t, "PETRI_LOG_LEVEL", config.EnvName("log.level"))
	assert.Equal(t, "PETRI_INDUSTRY_ALLOW_SELF_LOOPS", config.EnvName("industry.allowSelfLoops"))
}

func TestKeysAreSettable(t *testing.T) {
	c := config.Default()
	for _, key := range config.Keys() {
		v, err := c.Get(key)
		require.NoError(t, err, key)
		require.NoError(t, c.Set(key, v), key)
	}
	assert.Equal(t, config.Default(), c)
	assert.Len(t, config.Keys(), 9)
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "petri.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
log:
  level: warn
engine:
  seed: 7
ui:
  maxLabelSize: 20
  labelDistanceMax: 50
`), 0o644))
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("PETRI_UI_MAX_LABEL_SIZE=42\nPETRI_LOG_LEVEL=error\n"), 0o644))
	t.Setenv("PETRI_LOG_LEVEL", "debug")

	c, err := config.Load(file, dotenv)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Log.Level, "environment beats .env")
	assert.Equal(t, 42, c.UI.MaxLabelSize, ".env beats the file")
	assert.Equal(t, 50.0, c.UI.LabelDistanceMax)
	assert.Equal(t, int64(7), c.Engine.Seed)
	assert.Equal(t, 10.0, c.UI.LabelDistanceMin, "defaults survive")
}

func TestLoadMissingDotenv(t *testing.T) {
	c, err := config.Load("", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, config.Default().UI, c.UI)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("PETRI_UI_MAX_LABEL_SIZE", "lots")
	_, err := config.Load("", filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}

func TestValidate(t *testing.T) {
	c := config.Default()
	c.UI.LabelDistanceMin = 500
	assert.ErrorIs(t, c.Validate(), config.ErrInvalidValue)

	c = config.Default()
	c.Log.Level = "loud"
	assert.ErrorIs(t, c.Validate(), config.ErrInvalidValue)
}

func TestLoggerAndChooser(t *testing.T) {
	c := config.Default()
	c.Log.Level = "debug"
	c.Log.Development = true
	logger, err := c.Logger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	c.Engine.Seed = 3
	a, b := c.Chooser(), c.Chooser()
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Intn(100), b.Intn(100))
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-draw/engine/renderer/metadata"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[log]
level = "debug"

[draw]
max_instances_per_draw = 511
render_stage = "after_opaque"
outline_color = [1.0, 0.0, 0.0, 1.0]
smoothness = 4.0
`))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 511, cfg.Draw.MaxInstancesPerDraw)
	assert.Equal(t, metadata.RenderStageAfterOpaque, cfg.Draw.RenderStage)
	assert.Equal(t, float32(1), cfg.Draw.Outline().X)
	assert.Equal(t, float32(1), cfg.Draw.Smoothness, "smoothness is clamped")

	// untouched keys keep their defaults
	assert.Equal(t, float32(DefaultInstanceScale), cfg.Draw.InstanceScale)
	assert.Equal(t, DefaultShapeShader, cfg.Draw.ShapeShader)
	assert.True(t, cfg.Draw.EnableLighting)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("[draw]\nmax_instances_per_draw = -1\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Parse([]byte("[draw]\nunknown_key = 3\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Parse([]byte("[draw]\nrender_stage = \"never\"\n"))
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draw.toml")
	cfg := Default()
	cfg.Draw.MaxInstancesPerDraw = 64
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestParseYAML(t *testing.T) {
	cfg, err := ParseYAML([]byte(`
log:
  level: warn
draw:
  max_instances_per_draw: 256
  render_stage: before_opaque
  enable_lighting: false
`))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 256, cfg.Draw.MaxInstancesPerDraw)
	assert.Equal(t, metadata.RenderStageBeforeOpaque, cfg.Draw.RenderStage)
	assert.False(t, cfg.Draw.EnableLighting)
	assert.Equal(t, DefaultUnlitShader, cfg.Draw.UnlitShader)

	_, err = ParseYAML([]byte("draw:\n  bogus: 1\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	empty, err := ParseYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), empty)
}

func TestSaveLoadYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draw.yaml")
	cfg := Default()
	cfg.Draw.RenderStage = metadata.RenderStageAfterTransparent
	cfg.Draw.Smoothness = 0.25
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWatcherDeliversReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draw.toml")
	require.NoError(t, Default().Save(path))

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[draw]\nmax_instances_per_draw = 7\n"), 0o644))

	// a single write can surface as several events; wait for the final content
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg, ok := <-w.Updates():
			require.True(t, ok, "watcher closed early")
			if cfg.Draw.MaxInstancesPerDraw == 7 {
				return
			}
		case <-timeout:
			t.Fatal("no config update received")
		}
	}
}

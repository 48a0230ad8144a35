package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-draw/engine/core"
	"github.com/spaghettifunk/anima-draw/engine/math"
	"github.com/spaghettifunk/anima-draw/engine/renderer"
	"github.com/spaghettifunk/anima-draw/engine/shapes"
	"github.com/spaghettifunk/anima-draw/engine/systems"
)

type countingGame struct {
	updates  int
	renders  int
	shutdown bool
	boxes    int
	fail     error
}

func (c *countingGame) game(app *ApplicationConfig) *Game {
	return &Game{
		ApplicationConfig: app,
		FnUpdate: func(float64) error {
			c.updates++
			return nil
		},
		FnRender: func(draw *systems.DrawSystem, _ float64) error {
			c.renders++
			for i := range c.boxes {
				draw.Box(math.NewVec3(float32(i), 0, 0), math.NewVec3One(), shapes.Green)
			}
			return c.fail
		},
		FnShutdown: func() error {
			c.shutdown = true
			return nil
		},
	}
}

func headlessApp() *ApplicationConfig {
	return &ApplicationConfig{Name: "test", Headless: true, LogLevel: core.WarnLevel}
}

func newHeadlessEngine(t *testing.T, c *countingGame, app *ApplicationConfig) *Engine {
	t.Helper()
	e, err := New(c.game(app), nil)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	return e
}

func lastFrame(e *Engine) renderer.FrameRecord {
	return e.Host().(*renderer.HeadlessHost).LastFrame()
}

func TestNewRequiresGame(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)
	_, err = New(&Game{}, nil)
	assert.Error(t, err)
}

func TestEngineFrame(t *testing.T) {
	c := &countingGame{boxes: 2}
	e := newHeadlessEngine(t, c, headlessApp())

	require.NoError(t, e.Frame(0.016))
	assert.Equal(t, 1, c.updates)
	assert.Equal(t, 1, c.renders)
	assert.Equal(t, 2, lastFrame(e).Instances)
	assert.Equal(t, uint64(1), e.FrameCount())
	assert.Equal(t, 1, e.Metrics().Draw.Submitted)
	assert.Equal(t, 2, e.Metrics().Draw.ImmediateShapes)

	require.NoError(t, e.Shutdown())
	assert.True(t, c.shutdown)
}

func TestEngineFrameClosesAfterRenderError(t *testing.T) {
	c := &countingGame{boxes: 1, fail: errors.New("boom")}
	e := newHeadlessEngine(t, c, headlessApp())

	assert.Error(t, e.Frame(0.016))
	c.fail = nil
	require.NoError(t, e.Frame(0.016))
	// the failed frame's shape is dropped with the skipped pass
	assert.Equal(t, 1, lastFrame(e).Instances)
}

func TestEngineRun(t *testing.T) {
	c := &countingGame{boxes: 1}
	app := headlessApp()
	app.MaxFrames = 3
	e, err := New(c.game(app), nil)
	require.NoError(t, err)

	assert.ErrorIs(t, e.Run(), core.ErrNotInitialized)
	require.NoError(t, e.Initialize())
	assert.ErrorIs(t, e.Initialize(), core.ErrAlreadyInitialized)

	require.NoError(t, e.Run())
	assert.Equal(t, uint64(3), e.FrameCount())
	assert.Equal(t, 3, c.renders)
	require.NoError(t, e.Shutdown())
}

func TestEngineLoadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draw.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"warn\"\n\n[draw]\nmax_instances_per_draw = 2\n"), 0o644))

	c := &countingGame{boxes: 5}
	app := headlessApp()
	app.ConfigPath = path
	e := newHeadlessEngine(t, c, app)
	assert.Equal(t, 2, e.Config().Draw.MaxInstancesPerDraw)

	require.NoError(t, e.Frame(0.016))
	frame := lastFrame(e)
	assert.Len(t, frame.Draws, 3)
	assert.Equal(t, 5, frame.Instances)
	require.NoError(t, e.Shutdown())
}

func TestEngineMissingConfigUsesDefaults(t *testing.T) {
	app := headlessApp()
	app.ConfigPath = filepath.Join(t.TempDir(), "missing.toml")
	e := newHeadlessEngine(t, &countingGame{}, app)
	assert.Equal(t, 1023, e.Config().Draw.MaxInstancesPerDraw)
	require.NoError(t, e.Shutdown())
}

func TestEngineRejectsBrokenConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draw.toml")
	require.NoError(t, os.WriteFile(path, []byte("[draw]\nunknown_key = 1\n"), 0o644))
	app := headlessApp()
	app.ConfigPath = path
	_, err := New((&countingGame{}).game(app), nil)
	assert.Error(t, err)
}

func TestEngineQuitEventStopsRun(t *testing.T) {
	c := &countingGame{}
	app := headlessApp()
	app.MaxFrames = 100
	g := c.game(app)
	e, err := New(g, nil)
	require.NoError(t, err)
	g.FnUpdate = func(float64) error {
		c.updates++
		if c.updates == 2 {
			e.Events().Fire(core.EVENT_CODE_APPLICATION_QUIT, nil, core.EventContext{})
		}
		return nil
	}
	require.NoError(t, e.Initialize())

	require.NoError(t, e.Run())
	assert.Equal(t, uint64(2), e.FrameCount())
	require.NoError(t, e.Shutdown())
}

func TestEngineResizeEvent(t *testing.T) {
	c := &countingGame{}
	g := c.game(headlessApp())
	var resized [2]uint32
	g.FnOnResize = func(w, h uint32) error {
		resized = [2]uint32{w, h}
		return nil
	}
	e, err := New(g, nil)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())

	var ctx core.EventContext
	ctx.Data.U32[0], ctx.Data.U32[1] = 640, 480
	e.Events().Fire(core.EVENT_CODE_RESIZED, nil, ctx)

	w, h := e.GetFramebufferSize()
	assert.Equal(t, uint32(640), w)
	assert.Equal(t, uint32(480), h)
	assert.Equal(t, [2]uint32{640, 480}, resized)
	require.NoError(t, e.Shutdown())
}

package systems

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-draw/engine/config"
	"github.com/spaghettifunk/anima-draw/engine/core"
	"github.com/spaghettifunk/anima-draw/engine/math"
	"github.com/spaghettifunk/anima-draw/engine/renderer"
	"github.com/spaghettifunk/anima-draw/engine/shapes"
)

type testRig struct {
	draw *DrawSystem
	host *renderer.HeadlessHost
	time *core.ManualTime
}

func newTestRig(t *testing.T, hostConfig renderer.HeadlessHostConfig, cfg *config.DrawConfig) *testRig {
	t.Helper()
	tm := &core.ManualTime{}
	tm.Set(100)
	host := renderer.NewHeadlessHost(hostConfig)
	ds, err := NewDrawSystem(cfg, host, core.NewClockWithSource(tm.Now))
	require.NoError(t, err)
	require.NoError(t, ds.Initialize())
	return &testRig{draw: ds, host: host, time: tm}
}

// frame runs one full frame including the host's draw pass.
func (r *testRig) frame(t *testing.T) renderer.FrameRecord {
	t.Helper()
	require.NoError(t, r.draw.BeginFrame())
	require.NoError(t, r.draw.EndFrame())
	require.NoError(t, r.host.RenderFrame())
	return r.host.LastFrame()
}

func box(tag float32) shapes.Descriptor {
	style := shapes.DefaultStyle(shapes.White)
	style.OutlineThickness = tag
	return shapes.NewDescriptor(shapes.Box{Size: math.NewVec3One()}, style)
}

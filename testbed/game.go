package testbed

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/spaghettifunk/anima-draw/engine"
	"github.com/spaghettifunk/anima-draw/engine/core"
	"github.com/spaghettifunk/anima-draw/engine/math"
	"github.com/spaghettifunk/anima-draw/engine/shapes"
	"github.com/spaghettifunk/anima-draw/engine/systems"
)

// Options configures the demo application.
type Options struct {
	Headless    bool
	ConfigPath  string
	WatchConfig bool
	MaxFrames   uint64
	LogLevel    core.LogLevel
}

type TestGame struct {
	*engine.Game
}

type gameState struct {
	time   float64
	frame  uint64
	width  uint32
	height uint32

	// when the orbiting sphere left its last trail marker
	lastTrail float64
	paused    bool
}

// keySpace is the space bar key code reported by the window.
const keySpace = 32

func NewTestGame(opts Options) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				StartPosX:       100,
				StartPosY:       100,
				StartWidth:      1280,
				StartHeight:     720,
				Name:            "Anima Draw",
				LogLevel:        opts.LogLevel,
				Headless:        opts.Headless,
				ConfigPath:      opts.ConfigPath,
				WatchConfig:     opts.WatchConfig,
				MaxFrames:       opts.MaxFrames,
				TargetFrameRate: 60,
			},
			State: &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}
	draw, err := g.SystemManager.DrawSystem()
	if err != nil {
		return err
	}
	g.Events.Register(core.EVENT_CODE_KEY_PRESSED, g, g.onKey)

	// a floor grid that stays for the first minute
	for x := -5; x <= 5; x++ {
		for z := -5; z <= 5; z++ {
			id := fmt.Sprintf("grid_%d_%d", x, z)
			draw.Box(math.NewVec3(float32(x), -0.05, float32(z)), math.NewVec3(0.95, 0.1, 0.95), shapes.WithAlpha(shapes.Gray, 0.5),
				systems.Persistent(id, 60), systems.WithCornerRadius(0.02))
		}
	}
	draw.CoordinateFrame(math.NewVec3Zero(), math.NewQuatIdentity(), systems.DefaultFrameAxes(), systems.Persistent("origin", 3600))
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	s := g.state()
	if !s.paused {
		s.time += deltaTime
	}
	s.frame++
	return nil
}

func (g *TestGame) onKey(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	if context.Data.U32[0] != keySpace {
		return false
	}
	s := g.state()
	s.paused = !s.paused
	core.LogInfo("animation paused: %t", s.paused)
	return true
}

func (g *TestGame) Render(draw *systems.DrawSystem, deltaTime float64) error {
	s := g.state()
	t := float32(s.time)

	spin := math.NewQuatFromAxisAngle(math.NewVec3Up(), t, true)
	draw.Box(math.NewVec3(-2, 1, 0), math.NewVec3(1, 1, 1), shapes.Red, systems.WithRotation(spin), systems.WithCornerRadius(0.1))
	draw.Box(math.NewVec3(-2, 1, 0), math.NewVec3(1.2, 1.2, 1.2), shapes.White, systems.WithRotation(spin), systems.Wireframe())

	orbit := math.NewVec3(2*math32.Cos(t), 1+0.25*math32.Sin(3*t), 2*math32.Sin(t))
	draw.Sphere(orbit, 0.25, shapes.Cyan, systems.WithSmoothness(0.9))
	if s.time-s.lastTrail > 0.25 {
		draw.Sphere(orbit, 0.05, shapes.WithAlpha(shapes.Cyan, 0.6), systems.Persistent("", 2), systems.Unlit())
		s.lastTrail = s.time
	}

	draw.Ellipsoid(math.NewVec3(2, 1, -2), math.NewVec3(0.6, 0.3, 0.3), shapes.Magenta, systems.WithRotation(spin))
	draw.Cylinder(math.NewVec3(0, 0, 2), math.NewVec3(0, 1.5, 2), 0.2, shapes.Yellow)
	draw.Cone(math.NewVec3(1, 0, 2), math.NewVec3(1, 1, 2), 0.3, shapes.Green)
	draw.ArrowRay(orbit, orbit.Negate(), orbit.Length(), shapes.Blue)

	ring := make([]math.Vec3, 24)
	for i := range ring {
		a := 2 * math.K_PI * float32(i) / float32(len(ring))
		ring[i] = math.NewVec3(3*math32.Cos(a), 0.01, 3*math32.Sin(a))
	}
	draw.Path(ring, 0.02, shapes.White, true)

	hexagon := make([]math.Vec3, 6)
	for i := range hexagon {
		a := 2*math.K_PI*float32(i)/6 + t
		hexagon[i] = math.NewVec3(-3+0.5*math32.Cos(a), 0.02, 3+0.5*math32.Sin(a))
	}
	draw.Polygon(hexagon, shapes.WithAlpha(shapes.Green, 0.8))

	draw.Rectangle(math.NewVec3(3, 1, 3), math.NewVec2(1, 0.5), shapes.Blue, systems.WithCornerRadius(0.1), systems.WithExtrusion(0.05))
	draw.Disk(math.NewVec3(-3, 1, -3), 0.4, shapes.Yellow)
	draw.Line2D(math.NewVec3(-3, 2, -3), math.NewVec3(3, 2, -3), 0.03, shapes.Red)
	draw.Point(math.NewVec3(0, 3, 0), 0.05, shapes.White)

	if s.frame%300 == 0 {
		stats := draw.Stats()
		core.LogDebug("frame %d: %d persistent shapes, %d batches", s.frame, stats.PersistentShapes, stats.Batches)
	}
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	s := g.state()
	s.width = width
	s.height = height
	return nil
}

func (g *TestGame) Shutdown() error {
	core.LogInfo("testbed ran %d frames over %.1fs", g.state().frame, g.state().time)
	return nil
}

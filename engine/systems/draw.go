package systems

import (
	"fmt"

	"cogentcore.org/core/base/ordmap"
	"github.com/google/uuid"

	"github.com/spaghettifunk/anima-draw/engine/config"
	"github.com/spaghettifunk/anima-draw/engine/containers"
	"github.com/spaghettifunk/anima-draw/engine/core"
	"github.com/spaghettifunk/anima-draw/engine/math"
	"github.com/spaghettifunk/anima-draw/engine/renderer"
	"github.com/spaghettifunk/anima-draw/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-draw/engine/shapes"
)

// DrawPassName is the name the draw pass is registered under with the host.
const DrawPassName = "Visualization Draw"

type polygonRequest struct {
	first, count int
	color        shapes.Color
	transform    math.Mat4
}

/**
 * @brief DrawSystem turns shape requests into instanced draws. Callers submit
 * shapes at any time; each frame is bracketed by BeginFrame and EndFrame, and
 * the host drains the resulting commands from the registered render pass.
 * It is not safe for concurrent use.
 */
type DrawSystem struct {
	config config.DrawConfig
	host   renderer.Host
	clock  *core.Clock

	registry *ShapeRegistry
	compiler *BatchCompiler
	queue    *DrawQueue
	blocks   *containers.Pool[metadata.ParameterBlock]
	meshes   *containers.Pool[metadata.Geometry]

	boundingCube  *metadata.Geometry
	shapeMaterial *metadata.Material
	unlitMaterial *metadata.Material
	passStage     metadata.RenderStage

	configUpdates <-chan *config.Config
	events        *core.EventBus

	// low-level draws waiting for EndFrame
	direct        []DrawCommand
	polygons      []polygonRequest
	polygonPoints []math.Vec3

	persistentPolygons *ordmap.Map[string, persistentPolygon]

	collected []shapes.Descriptor
	expanded  []shapes.Descriptor

	initialized bool
	shutdown    bool
	inFrame     bool
	frameNumber uint64
	stats       core.DrawStats
}

func NewDrawSystem(cfg *config.DrawConfig, host renderer.Host, clock *core.Clock) (*DrawSystem, error) {
	if host == nil {
		return nil, core.ErrHostRequired
	}
	if cfg == nil {
		cfg = config.DefaultDraw()
	}
	c := *cfg
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = core.NewClock()
	}

	return &DrawSystem{
		config:   c,
		host:     host,
		clock:    clock,
		registry: NewShapeRegistry(clock),
		queue:    NewDrawQueue(64),
		blocks: containers.NewPool(metadata.NewParameterBlock, func(pb *metadata.ParameterBlock) {
			pb.Clear()
		}),
		meshes: containers.NewPool(func() *metadata.Geometry {
			return &metadata.Geometry{
				Name:    "vis_dynamic_" + uuid.NewString(),
				Dynamic: true,
			}
		}, func(g *metadata.Geometry) {
			g.ResetDynamic()
		}),
		persistentPolygons: ordmap.New[string, persistentPolygon](),
	}, nil
}

/**
 * @brief Initialize creates the bounding cube, acquires the materials and
 * registers the draw pass with the host. A missing shader falls back to the
 * host's default material with a warning.
 */
func (ds *DrawSystem) Initialize() error {
	if ds.initialized {
		return core.ErrAlreadyInitialized
	}
	cube, err := ds.host.CreateGeometry(metadata.GenerateUnitCubeConfig(metadata.BoundingCubeGeometryName))
	if err != nil {
		return fmt.Errorf("creating bounding cube: %w", err)
	}
	ds.boundingCube = cube
	ds.acquireMaterials()

	if err := ds.rebuildCompiler(); err != nil {
		return err
	}
	if err := ds.registerPass(ds.config.RenderStage); err != nil {
		return err
	}

	ds.initialized = true
	ds.shutdown = false
	core.LogInfo("draw system initialized (batch capacity %d, pass stage %s)", ds.compiler.Capacity(), ds.passStage)
	return nil
}

func (ds *DrawSystem) Shutdown() error {
	if !ds.initialized {
		return core.ErrNotInitialized
	}
	ds.host.UnregisterRenderPass(DrawPassName)
	ds.host.DestroyGeometry(ds.boundingCube)
	ds.boundingCube = nil
	ds.queue.Reset()
	ds.reclaim()
	ds.registry.ClearImmediate()
	ds.ClearAllPersistentShapes()
	ds.polygons = ds.polygons[:0]
	ds.polygonPoints = ds.polygonPoints[:0]
	ds.initialized = false
	ds.shutdown = true
	ds.inFrame = false
	return nil
}

func (ds *DrawSystem) Initialized() bool {
	return ds.initialized
}

// Registry exposes the underlying shape registry.
func (ds *DrawSystem) Registry() *ShapeRegistry {
	return ds.registry
}

// Config returns the configuration currently in effect.
func (ds *DrawSystem) Config() config.DrawConfig {
	return ds.config
}

// Stats describes the most recent frame. Submitted and Failed are filled in
// when the host runs the draw pass.
func (ds *DrawSystem) Stats() core.DrawStats {
	return ds.stats
}

func (ds *DrawSystem) FrameNumber() uint64 {
	return ds.frameNumber
}

// WatchConfig makes BeginFrame apply every configuration received on updates.
// When events is not nil EVENT_CODE_CONFIG_RELOADED is fired after each one.
func (ds *DrawSystem) WatchConfig(updates <-chan *config.Config, events *core.EventBus) {
	ds.configUpdates = updates
	ds.events = events
}

/**
 * @brief BeginFrame opens a frame. Pending configuration reloads are applied
 * here. Commands left over because the host skipped the draw pass are
 * dropped so pooled resources can be reused.
 */
func (ds *DrawSystem) BeginFrame() error {
	if !ds.initialized {
		return core.ErrNotInitialized
	}
	if ds.inFrame {
		return core.ErrFrameInProgress
	}
	ds.applyPendingConfig()

	if pending := ds.queue.Len(); pending > 0 {
		core.LogWarnOnce("draw.undrained", "draw pass did not run, dropping %d draw commands", pending)
		ds.queue.Reset()
		ds.reclaim()
	}

	ds.inFrame = true
	ds.frameNumber++
	ds.stats = core.DrawStats{}
	return nil
}

/**
 * @brief EndFrame expires persistent shapes, expands composites, packs every
 * live shape into batches and queues them for the draw pass. Immediate shapes
 * are cleared afterwards.
 */
func (ds *DrawSystem) EndFrame() error {
	if !ds.initialized {
		return core.ErrNotInitialized
	}
	if !ds.inFrame {
		return core.ErrNoFrameInProgress
	}
	ds.inFrame = false

	now := ds.clock.Now()
	ds.stats.ExpiredShapes = ds.registry.ExpirePersistent(now) + ds.expirePolygons(now)
	ds.stats.ImmediateShapes = ds.registry.ImmediateCount()
	ds.stats.PersistentShapes = ds.registry.PersistentCount() + ds.persistentPolygons.Len()

	for _, c := range ds.direct {
		ds.queue.Enqueue(c)
	}
	ds.enqueuePolygons()

	ds.collected = ds.registry.Collect(ds.collected[:0])
	ds.expanded = ExpandComposites(ds.collected, ds.expanded[:0])
	ds.stats.ExpandedShapes = len(ds.expanded)

	batches := ds.compiler.Compile(ds.expanded, ds.blocks)
	for _, b := range batches {
		ds.queue.Enqueue(DrawCommand{
			Geometry:  ds.boundingCube,
			Transform: math.NewMat4Identity(),
			Material:  ds.shapeMaterial,
			Params:    b.Params,
			Instances: b.Matrices,
		})
	}
	ds.stats.Batches = len(batches)

	ds.registry.ClearImmediate()
	clear(ds.collected)
	clear(ds.expanded)
	clear(ds.direct)
	ds.direct = ds.direct[:0]
	ds.polygons = ds.polygons[:0]
	ds.polygonPoints = ds.polygonPoints[:0]
	return nil
}

// PendingCommands is the number of draw commands waiting for the draw pass.
func (ds *DrawSystem) PendingCommands() int {
	return ds.queue.Len()
}

func (ds *DrawSystem) renderPass(cmd renderer.CommandList) error {
	queued := ds.queue.Len()
	submitted := ds.queue.Drain(cmd)
	ds.stats.Submitted += submitted
	ds.stats.Failed += queued - submitted
	ds.reclaim()
	return nil
}

func (ds *DrawSystem) reclaim() {
	ds.blocks.FinishedUsingAllItems()
	ds.meshes.FinishedUsingAllItems()
}

func (ds *DrawSystem) accepting() bool {
	if ds.shutdown {
		core.LogWarnOnce("draw.shutdown", "draw system is shut down, ignoring draw requests")
		return false
	}
	return true
}

// AddImmediateShape draws d during the current frame only.
func (ds *DrawSystem) AddImmediateShape(d shapes.Descriptor) {
	if !ds.accepting() || !d.Valid() {
		return
	}
	ds.registry.AddImmediateShape(d)
}

// SetPersistentShape draws d every frame for duration seconds, replacing any
// shape already stored under id.
func (ds *DrawSystem) SetPersistentShape(id string, duration float64, d shapes.Descriptor) {
	if !ds.accepting() || !d.Valid() {
		return
	}
	ds.registry.SetPersistentShape(id, duration, d)
}

// AddPersistentShape is SetPersistentShape with a generated id.
func (ds *DrawSystem) AddPersistentShape(duration float64, d shapes.Descriptor) string {
	if !ds.accepting() || !d.Valid() {
		return ""
	}
	return ds.registry.AddPersistentShape(duration, d)
}

// RemovePersistentShape removes the shape or polygon stored under id.
func (ds *DrawSystem) RemovePersistentShape(id string) {
	ds.registry.RemovePersistentShape(id)
	ds.persistentPolygons.DeleteKey(id)
}

func (ds *DrawSystem) ClearAllPersistentShapes() {
	ds.registry.ClearAllPersistentShapes()
	ds.persistentPolygons.Reset()
}

/**
 * @brief DrawMesh queues a single non-instanced draw of caller-owned
 * geometry. It bypasses batching and is submitted before the shape batches.
 */
func (ds *DrawSystem) DrawMesh(geometry *metadata.Geometry, transform math.Mat4, material *metadata.Material, params *metadata.ParameterBlock) {
	if !ds.accepting() {
		return
	}
	if geometry == nil {
		core.LogWarn("DrawMesh called without geometry, ignoring")
		return
	}
	if material == nil {
		material = ds.unlitMaterial
	}
	ds.direct = append(ds.direct, DrawCommand{
		Geometry:  geometry,
		Transform: transform,
		Material:  material,
		Params:    params,
	})
}

func (ds *DrawSystem) acquireMaterials() {
	ds.shapeMaterial = ds.acquireMaterial("vis_shapes", ds.config.ShapeShader, true)
	ds.unlitMaterial = ds.acquireMaterial("vis_unlit", ds.config.UnlitShader, false)
}

func (ds *DrawSystem) acquireMaterial(name, shader string, instanced bool) *metadata.Material {
	m, err := ds.host.AcquireMaterial(&metadata.MaterialConfig{
		Name:          name,
		ShaderName:    shader,
		DiffuseColour: math.NewVec4(1, 1, 1, 1),
		Instanced:     instanced,
	})
	if err != nil || m == nil {
		core.LogWarnOnce("draw.material."+shader, "material '%s' unavailable (%v), using the default material", shader, err)
		return ds.host.DefaultMaterial()
	}
	return m
}

func (ds *DrawSystem) rebuildCompiler() error {
	compiler, err := ds.compilerFor(&ds.config)
	if err != nil {
		return err
	}
	ds.compiler = compiler
	return nil
}

// compilerFor builds a compiler for cfg, capped by the host instance limit.
func (ds *DrawSystem) compilerFor(cfg *config.DrawConfig) (*BatchCompiler, error) {
	capacity := cfg.MaxInstancesPerDraw
	if hostMax := ds.host.MaxInstancesPerDraw(); hostMax > 0 && hostMax < capacity {
		capacity = hostMax
	}
	return NewBatchCompiler(capacity, cfg.InstanceScale)
}

func (ds *DrawSystem) registerPass(stage metadata.RenderStage) error {
	err := ds.host.RegisterRenderPass(&metadata.RenderPassConfig{
		Name:  DrawPassName,
		Stage: stage,
	}, ds.renderPass)
	if err != nil {
		return fmt.Errorf("registering draw pass: %w", err)
	}
	ds.passStage = stage
	return nil
}

/**
 * @brief ApplyConfig switches to cfg between frames. Batch capacity, instance
 * scale, pass stage, shaders and default styling all take effect from the
 * next EndFrame.
 */
func (ds *DrawSystem) ApplyConfig(cfg *config.DrawConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: missing draw section", config.ErrInvalidConfig)
	}
	if ds.inFrame {
		return core.ErrFrameInProgress
	}
	next := *cfg
	if err := next.Validate(); err != nil {
		return err
	}
	prev := ds.config

	compiler := ds.compiler
	if compiler == nil || prev.MaxInstancesPerDraw != next.MaxInstancesPerDraw || prev.InstanceScale != next.InstanceScale {
		c, err := ds.compilerFor(&next)
		if err != nil {
			return err
		}
		compiler = c
	}

	// on failure the pass goes back to its old stage and nothing else changes
	if ds.initialized && next.RenderStage != ds.passStage {
		prevStage := ds.passStage
		ds.host.UnregisterRenderPass(DrawPassName)
		if err := ds.registerPass(next.RenderStage); err != nil {
			if rerr := ds.registerPass(prevStage); rerr != nil {
				core.LogError("restoring draw pass at stage %s: %s", prevStage, rerr)
			}
			return err
		}
	}

	ds.config = next
	ds.compiler = compiler
	if ds.initialized && (prev.ShapeShader != next.ShapeShader || prev.UnlitShader != next.UnlitShader) {
		ds.acquireMaterials()
	}
	return nil
}

func (ds *DrawSystem) applyPendingConfig() {
	if ds.configUpdates == nil {
		return
	}
	select {
	case cfg, ok := <-ds.configUpdates:
		if !ok {
			ds.configUpdates = nil
			return
		}
		if err := ds.ApplyConfig(&cfg.Draw); err != nil {
			core.LogError("applying reloaded config: %s", err)
			return
		}
		if level, err := core.ParseLogLevel(cfg.Log.Level); err == nil {
			core.SetLogLevel(level)
		}
		core.LogInfo("draw config applied")
		if ds.events != nil {
			ds.events.Fire(core.EVENT_CODE_CONFIG_RELOADED, ds, core.EventContext{})
		}
	default:
	}
}

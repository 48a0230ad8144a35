package renderer

import (
	"fmt"
	"slices"

	"github.com/spaghettifunk/anima-draw/engine/core"
	"github.com/spaghettifunk/anima-draw/engine/math"
	"github.com/spaghettifunk/anima-draw/engine/renderer/metadata"
	"golang.org/x/image/math/f32"
)

// DefaultMaxInstancesPerDraw matches the instanced-draw limit of common hosts.
const DefaultMaxInstancesPerDraw = 1023

type HeadlessHostConfig struct {
	MaxInstancesPerDraw int
	// Shaders lists the shaders the host can build. Empty means any shader.
	Shaders []string
}

// DrawRecord is a summary of one draw call seen by a HeadlessHost.
type DrawRecord struct {
	Pass       string
	Geometry   string
	Material   string
	Instances  int
	Properties []string
}

// FrameRecord collects everything submitted during one RenderFrame call.
type FrameRecord struct {
	Frame     uint64
	Draws     []DrawRecord
	Instances int
	Errors    int
}

type registeredPass struct {
	config metadata.RenderPassConfig
	fn     RenderPassFunc
}

/**
 * @brief A Host without a GPU. It validates and records every draw and runs
 * registered passes in stage order, which makes it suitable for tests, CI and
 * the demo when no window is available.
 */
type HeadlessHost struct {
	config          HeadlessHostConfig
	passes          []registeredPass
	nextGeometryID  uint32
	nextMaterialID  uint32
	geometries      map[uint32]*metadata.Geometry
	defaultMaterial *metadata.Material
	frameNumber     uint64
	last            FrameRecord
	currentPass     string
}

func NewHeadlessHost(config HeadlessHostConfig) *HeadlessHost {
	if config.MaxInstancesPerDraw <= 0 {
		config.MaxInstancesPerDraw = DefaultMaxInstancesPerDraw
	}
	h := &HeadlessHost{
		config:     config,
		geometries: make(map[uint32]*metadata.Geometry),
	}
	h.defaultMaterial = &metadata.Material{
		ID:            h.nextMaterialID,
		Name:          metadata.DefaultMaterialName,
		ShaderName:    "Standard",
		DiffuseColour: math.NewVec4(1, 1, 1, 1),
	}
	h.nextMaterialID++
	return h
}

func (h *HeadlessHost) MaxInstancesPerDraw() int {
	return h.config.MaxInstancesPerDraw
}

func (h *HeadlessHost) CreateGeometry(config *metadata.GeometryConfig) (*metadata.Geometry, error) {
	if config == nil {
		return nil, fmt.Errorf("create geometry: %w", core.ErrNilGeometry)
	}
	if len(config.Indices)%3 != 0 {
		return nil, fmt.Errorf("create geometry %q: index count %d is not a multiple of 3", config.Name, len(config.Indices))
	}
	for _, idx := range config.Indices {
		if int(idx) >= len(config.Vertices) {
			return nil, fmt.Errorf("create geometry %q: index %d out of range", config.Name, idx)
		}
	}
	g := &metadata.Geometry{
		ID:      h.nextGeometryID,
		Center:  config.Center,
		Extents: config.Extents,
		Name:    config.Name,
	}
	h.nextGeometryID++
	h.geometries[g.ID] = g
	core.LogDebug("headless host created geometry '%s' (%d vertices)", g.Name, len(config.Vertices))
	return g, nil
}

func (h *HeadlessHost) DestroyGeometry(geometry *metadata.Geometry) {
	if geometry == nil {
		return
	}
	delete(h.geometries, geometry.ID)
}

func (h *HeadlessHost) AcquireMaterial(config *metadata.MaterialConfig) (*metadata.Material, error) {
	if len(h.config.Shaders) > 0 && !slices.Contains(h.config.Shaders, config.ShaderName) {
		return nil, fmt.Errorf("shader %q not found", config.ShaderName)
	}
	m := &metadata.Material{
		ID:            h.nextMaterialID,
		Name:          config.Name,
		ShaderName:    config.ShaderName,
		DiffuseColour: config.DiffuseColour,
		Instanced:     config.Instanced,
	}
	h.nextMaterialID++
	return m, nil
}

func (h *HeadlessHost) DefaultMaterial() *metadata.Material {
	return h.defaultMaterial
}

func (h *HeadlessHost) RegisterRenderPass(config *metadata.RenderPassConfig, fn RenderPassFunc) error {
	if config == nil || fn == nil {
		return fmt.Errorf("register render pass: missing config or callback")
	}
	for _, p := range h.passes {
		if p.config.Name == config.Name {
			return fmt.Errorf("render pass %q already registered", config.Name)
		}
	}
	h.passes = append(h.passes, registeredPass{config: *config, fn: fn})
	slices.SortStableFunc(h.passes, func(a, b registeredPass) int {
		return int(a.config.Stage) - int(b.config.Stage)
	})
	return nil
}

func (h *HeadlessHost) UnregisterRenderPass(name string) {
	h.passes = slices.DeleteFunc(h.passes, func(p registeredPass) bool {
		return p.config.Name == name
	})
}

// PassCount is the number of registered passes.
func (h *HeadlessHost) PassCount() int {
	return len(h.passes)
}

/**
 * @brief Runs every registered pass once, in stage order. A failing pass is
 * logged and does not stop the passes after it.
 */
func (h *HeadlessHost) RenderFrame() error {
	h.frameNumber++
	h.last = FrameRecord{Frame: h.frameNumber, Draws: make([]DrawRecord, 0, len(h.last.Draws))}
	var firstErr error
	for _, p := range h.passes {
		h.currentPass = p.config.Name
		if err := p.fn(h); err != nil {
			core.LogError("render pass '%s' failed: %s", p.config.Name, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("render pass %q: %w", p.config.Name, err)
			}
		}
	}
	h.currentPass = ""
	return firstErr
}

// LastFrame returns what the most recent RenderFrame recorded. The record
// stays valid after later frames.
func (h *HeadlessHost) LastFrame() FrameRecord {
	return h.last
}

func (h *HeadlessHost) DrawMesh(geometry *metadata.Geometry, model math.Mat4, material *metadata.Material, params *metadata.ParameterBlock) error {
	if err := h.validate(geometry, material); err != nil {
		return err
	}
	if geometry.Dynamic && len(geometry.Indices)%3 != 0 {
		h.last.Errors++
		return fmt.Errorf("dynamic geometry %q: index count %d is not a multiple of 3", geometry.Name, len(geometry.Indices))
	}
	h.record(geometry, material, 1, params)
	return nil
}

func (h *HeadlessHost) DrawMeshInstanced(geometry *metadata.Geometry, material *metadata.Material, instances []f32.Mat4, params *metadata.ParameterBlock) error {
	if err := h.validate(geometry, material); err != nil {
		return err
	}
	if len(instances) > h.config.MaxInstancesPerDraw {
		h.last.Errors++
		return fmt.Errorf("%d instances: %w", len(instances), core.ErrInstanceLimit)
	}
	h.record(geometry, material, len(instances), params)
	return nil
}

func (h *HeadlessHost) validate(geometry *metadata.Geometry, material *metadata.Material) error {
	if geometry == nil {
		h.last.Errors++
		return core.ErrNilGeometry
	}
	if material == nil {
		h.last.Errors++
		return core.ErrNilMaterial
	}
	return nil
}

func (h *HeadlessHost) record(geometry *metadata.Geometry, material *metadata.Material, instances int, params *metadata.ParameterBlock) {
	rec := DrawRecord{
		Pass:      h.currentPass,
		Geometry:  geometry.Name,
		Material:  material.Name,
		Instances: instances,
	}
	if params != nil {
		rec.Properties = params.Names()
	}
	h.last.Draws = append(h.last.Draws, rec)
	h.last.Instances += instances
}

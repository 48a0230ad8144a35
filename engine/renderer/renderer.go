package renderer

import (
	"github.com/spaghettifunk/anima-draw/engine/math"
	"github.com/spaghettifunk/anima-draw/engine/renderer/metadata"
	"golang.org/x/image/math/f32"
)

/**
 * @brief The host renderer the draw system plugs into. The host owns the GPU:
 * it uploads geometry, builds materials from shaders and runs registered
 * passes at their pipeline stage once per frame.
 */
type Host interface {
	// MaxInstancesPerDraw is the hardware limit of one instanced draw call.
	MaxInstancesPerDraw() int
	CreateGeometry(config *metadata.GeometryConfig) (*metadata.Geometry, error)
	DestroyGeometry(geometry *metadata.Geometry)
	AcquireMaterial(config *metadata.MaterialConfig) (*metadata.Material, error)
	// DefaultMaterial is used when a requested shader is unavailable.
	DefaultMaterial() *metadata.Material
	RegisterRenderPass(config *metadata.RenderPassConfig, fn RenderPassFunc) error
	UnregisterRenderPass(name string)
}

// RenderPassFunc records draw commands for one pass execution.
type RenderPassFunc func(cmd CommandList) error

/**
 * @brief The command recording surface handed to a render pass.
 */
type CommandList interface {
	DrawMesh(geometry *metadata.Geometry, model math.Mat4, material *metadata.Material, params *metadata.ParameterBlock) error
	// DrawMeshInstanced draws geometry once per matrix in instances.
	DrawMeshInstanced(geometry *metadata.Geometry, material *metadata.Material, instances []f32.Mat4, params *metadata.ParameterBlock) error
}

// ToF32 converts a model matrix into the row-major layout of f32.Mat4.
func ToF32(m math.Mat4) f32.Mat4 {
	return f32.Mat4(m.RowMajor())
}

// FromF32 converts a row-major f32.Mat4 back into a model matrix.
func FromF32(m f32.Mat4) math.Mat4 {
	return math.NewMat4Transposed(math.Mat4{Data: m})
}

package systems

import (
	"fmt"

	"golang.org/x/image/math/f32"

	"github.com/spaghettifunk/anima-draw/engine/containers"
	"github.com/spaghettifunk/anima-draw/engine/core"
	"github.com/spaghettifunk/anima-draw/engine/math"
	"github.com/spaghettifunk/anima-draw/engine/renderer"
	"github.com/spaghettifunk/anima-draw/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-draw/engine/shapes"
)

// Batch is one instanced draw worth of shapes, packed into Params.
type Batch struct {
	Params   *metadata.ParameterBlock
	Matrices []f32.Mat4
}

func (b Batch) Len() int {
	return len(b.Matrices)
}

// Instance unpacks instance i. The matrix includes the instance scale.
func (b Batch) Instance(i int) shapes.InstanceData {
	p := b.Params
	return shapes.InstanceData{
		ShapeType:        p.Floats(metadata.PropertyShapeType)[i],
		Params1:          fromF32(p.Vectors(metadata.PropertyShapeParams1)[i]),
		Params2:          fromF32(p.Vectors(metadata.PropertyShapeParams2)[i]),
		Params3:          fromF32(p.Vectors(metadata.PropertyShapeParams3)[i]),
		FillColor:        fromF32(p.Vectors(metadata.PropertyFillColor)[i]),
		OutlineColor:     fromF32(p.Vectors(metadata.PropertyOutlineColor)[i]),
		OutlineThickness: p.Floats(metadata.PropertyOutlineThickness)[i],
		CornerRadius:     p.Floats(metadata.PropertyCornerRadius)[i],
		Extrusion:        p.Floats(metadata.PropertyExtrusion)[i],
		EnableLighting:   p.Floats(metadata.PropertyEnableLighting)[i],
		Smoothness:       p.Floats(metadata.PropertySmoothness)[i],
		Matrix:           renderer.FromF32(b.Matrices[i]),
	}
}

/**
 * @brief BatchCompiler packs shapes into batches of at most Capacity
 * instances. Shapes keep their order, none is split across batches and
 * every batch but the last is full.
 */
type BatchCompiler struct {
	capacity      int
	instanceScale math.Mat4
	batches       []Batch
}

func NewBatchCompiler(capacity int, instanceScale float32) (*BatchCompiler, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("capacity %d: %w", capacity, core.ErrInvalidCapacity)
	}
	if instanceScale <= 0 {
		instanceScale = 1
	}
	return &BatchCompiler{
		capacity:      capacity,
		instanceScale: math.NewMat4Scale(math.NewVec3Splat(instanceScale)),
	}, nil
}

func (bc *BatchCompiler) Capacity() int {
	return bc.capacity
}

/**
 * @brief Compile packs src into ceil(len(src)/Capacity) batches. Parameter
 * blocks come from blocks and stay checked out until the pool is reclaimed.
 * The returned slice is reused by the next call.
 */
func (bc *BatchCompiler) Compile(src []shapes.Descriptor, blocks *containers.Pool[metadata.ParameterBlock]) []Batch {
	clear(bc.batches)
	bc.batches = bc.batches[:0]
	for start := 0; start < len(src); start += bc.capacity {
		end := min(start+bc.capacity, len(src))
		bc.batches = append(bc.batches, bc.pack(src[start:end], blocks.GetItem()))
	}
	return bc.batches
}

func (bc *BatchCompiler) pack(chunk []shapes.Descriptor, block *metadata.ParameterBlock) Batch {
	n := len(chunk)
	shapeTypes := block.FloatArray(metadata.PropertyShapeType, n)
	params1 := block.VectorArray(metadata.PropertyShapeParams1, n)
	params2 := block.VectorArray(metadata.PropertyShapeParams2, n)
	params3 := block.VectorArray(metadata.PropertyShapeParams3, n)
	fills := block.VectorArray(metadata.PropertyFillColor, n)
	outlines := block.VectorArray(metadata.PropertyOutlineColor, n)
	thickness := block.FloatArray(metadata.PropertyOutlineThickness, n)
	corners := block.FloatArray(metadata.PropertyCornerRadius, n)
	extrusion := block.FloatArray(metadata.PropertyExtrusion, n)
	lighting := block.FloatArray(metadata.PropertyEnableLighting, n)
	smoothness := block.FloatArray(metadata.PropertySmoothness, n)
	matrices := block.MatrixArray(metadata.PropertyInstanceMatrices, n)

	for i, d := range chunk {
		data := d.Pack()
		shapeTypes[i] = data.ShapeType
		params1[i] = toF32(data.Params1)
		params2[i] = toF32(data.Params2)
		params3[i] = toF32(data.Params3)
		fills[i] = toF32(data.FillColor)
		outlines[i] = toF32(data.OutlineColor)
		thickness[i] = data.OutlineThickness
		corners[i] = data.CornerRadius
		extrusion[i] = data.Extrusion
		lighting[i] = data.EnableLighting
		smoothness[i] = data.Smoothness
		matrices[i] = renderer.ToF32(bc.instanceScale.Mul(data.Matrix))
	}
	return Batch{Params: block, Matrices: matrices}
}

func toF32(v math.Vec4) f32.Vec4 {
	return f32.Vec4(v.Array())
}

func fromF32(v f32.Vec4) math.Vec4 {
	return math.NewVec4(v[0], v[1], v[2], v[3])
}

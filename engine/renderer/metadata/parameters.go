package metadata

import (
	"slices"

	"golang.org/x/image/math/f32"
)

/**
 * @brief A named set of per-draw shader parameters. Arrays are sized per call
 * and their backing storage is reused, so a pooled block stops allocating once
 * it has seen its largest batch.
 */
type ParameterBlock struct {
	floats   map[string][]float32
	vectors  map[string][]f32.Vec4
	matrices map[string][]f32.Mat4
}

func NewParameterBlock() *ParameterBlock {
	return &ParameterBlock{
		floats:   make(map[string][]float32),
		vectors:  make(map[string][]f32.Vec4),
		matrices: make(map[string][]f32.Mat4),
	}
}

// Clear empties every array but keeps the allocations.
func (pb *ParameterBlock) Clear() {
	for k, v := range pb.floats {
		pb.floats[k] = v[:0]
	}
	for k, v := range pb.vectors {
		pb.vectors[k] = v[:0]
	}
	for k, v := range pb.matrices {
		pb.matrices[k] = v[:0]
	}
}

// FloatArray returns the float array name resized to n elements.
func (pb *ParameterBlock) FloatArray(name string, n int) []float32 {
	s := slices.Grow(pb.floats[name][:0], n)[:n]
	pb.floats[name] = s
	return s
}

// VectorArray returns the vector array name resized to n elements.
func (pb *ParameterBlock) VectorArray(name string, n int) []f32.Vec4 {
	s := slices.Grow(pb.vectors[name][:0], n)[:n]
	pb.vectors[name] = s
	return s
}

// MatrixArray returns the matrix array name resized to n elements.
func (pb *ParameterBlock) MatrixArray(name string, n int) []f32.Mat4 {
	s := slices.Grow(pb.matrices[name][:0], n)[:n]
	pb.matrices[name] = s
	return s
}

func (pb *ParameterBlock) SetFloat(name string, value float32) {
	pb.FloatArray(name, 1)[0] = value
}

func (pb *ParameterBlock) SetVector(name string, value f32.Vec4) {
	pb.VectorArray(name, 1)[0] = value
}

func (pb *ParameterBlock) Floats(name string) []float32 {
	return pb.floats[name]
}

func (pb *ParameterBlock) Vectors(name string) []f32.Vec4 {
	return pb.vectors[name]
}

func (pb *ParameterBlock) Matrices(name string) []f32.Mat4 {
	return pb.matrices[name]
}

// Names lists every property that currently holds data, sorted.
func (pb *ParameterBlock) Names() []string {
	names := make([]string, 0, len(pb.floats)+len(pb.vectors)+len(pb.matrices))
	for k, v := range pb.floats {
		if len(v) > 0 {
			names = append(names, k)
		}
	}
	for k, v := range pb.vectors {
		if len(v) > 0 {
			names = append(names, k)
		}
	}
	for k, v := range pb.matrices {
		if len(v) > 0 {
			names = append(names, k)
		}
	}
	slices.Sort(names)
	return names
}

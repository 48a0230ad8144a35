package shapes

import (
	"github.com/spaghettifunk/anima-draw/engine/math"
)

/**
 * @brief The flat per-instance record read by the shape shader. Only the
 * batch compiler produces these.
 */
type InstanceData struct {
	ShapeType        float32
	Params1          math.Vec4
	Params2          math.Vec4
	Params3          math.Vec4
	FillColor        Color
	OutlineColor     Color
	OutlineThickness float32
	CornerRadius     float32
	Extrusion        float32
	EnableLighting   float32
	Smoothness       float32
	Matrix           math.Mat4
}

// Pack flattens the descriptor. The matrix places the unit cube over the
// shape: the shape's own frame first, then the descriptor transform.
func (d Descriptor) Pack() InstanceData {
	p1, p2, p3 := d.Shape.Parameters()
	lighting := float32(0)
	if d.Style.EnableLighting {
		lighting = 1
	}
	return InstanceData{
		ShapeType:        float32(d.Shape.Type()),
		Params1:          p1,
		Params2:          p2,
		Params3:          p3,
		FillColor:        d.Style.FillColor,
		OutlineColor:     d.Style.OutlineColor,
		OutlineThickness: d.Style.OutlineThickness,
		CornerRadius:     d.Shape.CornerRounding(),
		Extrusion:        d.Shape.ExtrusionDepth(),
		EnableLighting:   lighting,
		Smoothness:       math.Clamp(d.Style.Smoothness, 0, 1),
		Matrix:           d.Shape.Frame().Mul(d.Transform),
	}
}

// Package shapes defines the shapes the draw system can render. Each variant
// carries its own named fields and only becomes the flat per-instance record
// the shape shader reads when it is packed into a batch.
package shapes

import (
	"fmt"

	"github.com/spaghettifunk/anima-draw/engine/math"
)

// Type is the shape tag written into the _ShapeType shader array.
type Type int32

const (
	TypeBox Type = iota
	TypeSphere
	TypeEllipsoid
	TypeCylinder
	TypeCapsule
	TypeCone
	TypeArrow
	TypeRectangle
	TypeDisk
	TypeTriangle
	TypeLine2D
)

var typeNames = [...]string{
	TypeBox:       "Box",
	TypeSphere:    "Sphere",
	TypeEllipsoid: "Ellipsoid",
	TypeCylinder:  "Cylinder",
	TypeCapsule:   "Capsule",
	TypeCone:      "Cone",
	TypeArrow:     "Arrow",
	TypeRectangle: "Rectangle",
	TypeDisk:      "Disk",
	TypeTriangle:  "Triangle",
	TypeLine2D:    "Line2D",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int32(t))
}

// IsComposite reports whether shapes of this type are drawn as several
// primitives.
func (t Type) IsComposite() bool {
	return t == TypeArrow
}

/**
 * @brief A drawable shape. Coordinates are expressed in the space of the
 * owning Descriptor's transform.
 */
type Shape interface {
	Type() Type
	// Parameters returns the three shader parameter vectors for the shape.
	Parameters() (p1, p2, p3 math.Vec4)
	CornerRounding() float32
	ExtrusionDepth() float32
	// Frame maps the unit bounding cube onto the shape.
	Frame() math.Mat4
}

// Color is a linear RGBA colour.
type Color = math.Vec4

// RGBA builds a Color from its components.
func RGBA(r, g, b, a float32) Color {
	return Color{X: r, Y: g, Z: b, W: a}
}

var (
	Black   = RGBA(0, 0, 0, 1)
	White   = RGBA(1, 1, 1, 1)
	Red     = RGBA(1, 0, 0, 1)
	Green   = RGBA(0, 1, 0, 1)
	Blue    = RGBA(0, 0, 1, 1)
	Yellow  = RGBA(1, 0.92, 0.016, 1)
	Cyan    = RGBA(0, 1, 1, 1)
	Magenta = RGBA(1, 0, 1, 1)
	Gray    = RGBA(0.5, 0.5, 0.5, 1)
	Clear   = RGBA(0, 0, 0, 0)
)

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c Color, a float32) Color {
	c.W = a
	return c
}

/**
 * @brief Appearance shared by every shape type.
 */
type Style struct {
	FillColor        Color
	OutlineColor     Color
	OutlineThickness float32
	EnableLighting   bool
	// Smoothness is clamped to [0, 1] when packed.
	Smoothness float32
}

// DefaultStyle returns a lit, black-outlined style with the given fill.
func DefaultStyle(fill Color) Style {
	return Style{
		FillColor:        fill,
		OutlineColor:     Black,
		OutlineThickness: 0.02,
		EnableLighting:   true,
		Smoothness:       0.5,
	}
}

/**
 * @brief One request to draw a shape: what to draw, how it looks and where.
 */
type Descriptor struct {
	Shape     Shape
	Style     Style
	Transform math.Mat4
}

// NewDescriptor places shape with an identity transform.
func NewDescriptor(shape Shape, style Style) Descriptor {
	return Descriptor{Shape: shape, Style: style, Transform: math.NewMat4Identity()}
}

// Valid reports whether the descriptor can be packed.
func (d Descriptor) Valid() bool {
	return d.Shape != nil
}

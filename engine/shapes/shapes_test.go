package shapes

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-draw/engine/math"
)

const tolerance = 1e-5

func TestTypeWireValues(t *testing.T) {
	assert.Equal(t, Type(0), TypeBox)
	assert.Equal(t, Type(6), TypeArrow)
	assert.Equal(t, Type(10), TypeLine2D)
	assert.Equal(t, "Capsule", TypeCapsule.String())
	assert.Equal(t, "Type(42)", Type(42).String())
	assert.True(t, TypeArrow.IsComposite())
	assert.False(t, TypeCone.IsComposite())
}

func TestBoxPack(t *testing.T) {
	d := NewDescriptor(Box{Size: math.NewVec3(2, 4, 6), CornerRadius: 0.1}, DefaultStyle(Red))
	d.Transform = math.NewMat4Translation(math.NewVec3(1, 0, 0))
	data := d.Pack()

	assert.Equal(t, float32(TypeBox), data.ShapeType)
	assert.Equal(t, math.NewVec4(1, 2, 3, 0), data.Params1)
	assert.Equal(t, float32(0.1), data.CornerRadius)
	assert.Equal(t, float32(1), data.EnableLighting)
	assert.Equal(t, Red, data.FillColor)

	// unit cube corner lands on the box corner
	corner := data.Matrix.MulPoint(math.NewVec3(0.5, 0.5, 0.5))
	assert.True(t, corner.Compare(math.NewVec3(2, 2, 3), tolerance), "got %v", corner)
}

func TestCylinderFrameFollowsSegment(t *testing.T) {
	c := Cylinder{Start: math.NewVec3(1, 0, 0), End: math.NewVec3(5, 0, 0), Radius: 0.5}
	frame := c.Frame()

	top := frame.MulPoint(math.NewVec3(0, 0.5, 0))
	bottom := frame.MulPoint(math.NewVec3(0, -0.5, 0))
	assert.True(t, top.Compare(c.End, tolerance), "got %v", top)
	assert.True(t, bottom.Compare(c.Start, tolerance), "got %v", bottom)

	p1, p2, _ := c.Parameters()
	assert.Equal(t, float32(0.5), p1.W)
	assert.Equal(t, float32(0), p2.W)
	assert.InDelta(t, 4, p1.ToVec3().Distance(p2.ToVec3()), tolerance)
}

func TestSegmentDegenerateIsFinite(t *testing.T) {
	p := math.NewVec3(3, 3, 3)
	for _, s := range []Shape{
		Cylinder{Start: p, End: p, Radius: 1},
		Cone{Base: p, Tip: p, Radius: 1},
		Capsule{Start: p, End: p, Radius: 1},
	} {
		data := NewDescriptor(s, DefaultStyle(White)).Pack()
		for _, v := range data.Matrix.Data {
			assert.True(t, math.IsFinite(v), "%s matrix", s.Type())
		}
		assert.True(t, data.Params1.ToVec3().IsFinite())
		assert.True(t, data.Matrix.Translation().Compare(p, tolerance))
	}
}

func TestCapsuleBoundsIncludeCaps(t *testing.T) {
	c := Capsule{Start: math.NewVec3(0, 0, 0), End: math.NewVec3(0, 2, 0), Radius: 0.25}
	top := c.Frame().MulPoint(math.NewVec3(0, 0.5, 0))
	assert.InDelta(t, 2.25, top.Y, tolerance)
	_, _, p3 := c.Parameters()
	assert.Equal(t, math.NewVec4(0, 0, 1, 0), p3)
}

func TestArrowSplit(t *testing.T) {
	a := Arrow{
		Start:       math.NewVec3(0, 0, 0),
		End:         math.NewVec3(0, 10, 0),
		ShaftRadius: 1,
		HeadRadius:  2,
		HeadLength:  3,
	}
	shaft, head := a.Split()
	assert.Equal(t, math.NewVec3(0, 0, 0), shaft.Start)
	assert.True(t, shaft.End.Compare(math.NewVec3(0, 7, 0), tolerance))
	assert.Equal(t, float32(1), shaft.Radius)
	assert.True(t, head.Base.Compare(math.NewVec3(0, 7, 0), tolerance))
	assert.Equal(t, math.NewVec3(0, 10, 0), head.Tip)
	assert.Equal(t, float32(2), head.Radius)
}

func TestArrowSplitHeadLongerThanArrow(t *testing.T) {
	a := Arrow{Start: math.NewVec3(0, 0, 0), End: math.NewVec3(1, 0, 0), ShaftRadius: 0.1, HeadRadius: 0.2, HeadLength: 5}
	shaft, head := a.Split()
	assert.Zero(t, shaft.Length())
	assert.Equal(t, a.Start, head.Base)
}

func TestArrowPackedParameters(t *testing.T) {
	a := Arrow{Start: math.NewVec3(0, 0, 0), End: math.NewVec3(0, 4, 0), ShaftRadius: 0.1, HeadRadius: 0.3, HeadLength: 1}
	p1, p2, p3 := a.Parameters()
	assert.Equal(t, math.NewVec4(0, 0, 0, 0.1), p1)
	assert.Equal(t, math.NewVec4(0, 4, 0, 0.3), p2)
	assert.Equal(t, math.NewVec4(1, 0, 0, 0), p3)

	// bounds padded by twice the widest radius
	size := a.Frame().MulDirection(math.NewVec3(1, 1, 1))
	assert.True(t, size.Compare(math.NewVec3(0.6, 4.6, 0.6), tolerance), "got %v", size)
}

func TestFlatShapes(t *testing.T) {
	rect := NewDescriptor(Rectangle{Size: math.NewVec2(4, 2), CornerRadius: 0.2, Extrusion: 0.1}, DefaultStyle(Blue)).Pack()
	assert.Equal(t, float32(TypeRectangle), rect.ShapeType)
	assert.Equal(t, math.NewVec4(2, 1, 0, 0), rect.Params1)
	assert.Equal(t, math.NewVec4(0, 0, 1, 0), rect.Params3)
	assert.Equal(t, float32(0.1), rect.Extrusion)

	tri := Triangle{A: math.NewVec3(-1, 0, 0), B: math.NewVec3(1, 0, 0), C: math.NewVec3(0, 2, 0)}
	center := tri.Frame().Translation()
	assert.True(t, center.Compare(math.NewVec3(0, 1, 0), tolerance))

	line := Line2D{Start: math.NewVec3(0, 0, 0), End: math.NewVec3(2, 0, 0), Thickness: 0.1}
	p1, _, _ := line.Parameters()
	assert.Equal(t, float32(0.1), p1.W)
}

func TestPackClampsSmoothness(t *testing.T) {
	style := DefaultStyle(White)
	style.Smoothness = 3
	style.EnableLighting = false
	data := NewDescriptor(Sphere{Radius: 1}, style).Pack()
	assert.Equal(t, float32(1), data.Smoothness)
	assert.Equal(t, float32(0), data.EnableLighting)
}

func TestColorFrom(t *testing.T) {
	c := ColorFrom(color.NRGBA{R: 255, G: 0, B: 51, A: 255})
	require.InDelta(t, 1, c.X, 1e-6)
	assert.InDelta(t, 0.2, c.Z, 1e-6)
	assert.Equal(t, float32(1), c.W)
}
